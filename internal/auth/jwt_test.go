package auth

import (
	"testing"
	"time"

	"tagtrack/internal/user"
)

func TestIssueAndParseRoundtrip(t *testing.T) {
	pair, err := Issue(7, user.RoleTeacher, "tagtrack", "secret", time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := Parse(pair.AccessToken, "secret", "tagtrack")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 7 || claims.Role != user.RoleTeacher {
		t.Fatalf("claims mangled: %+v", claims)
	}
}

func TestParseRejectsWrongKey(t *testing.T) {
	pair, _ := Issue(7, user.RoleAdmin, "tagtrack", "secret", time.Minute, time.Hour)
	if _, err := Parse(pair.AccessToken, "other", "tagtrack"); err == nil {
		t.Fatal("token signed with a different key must not parse")
	}
}

func TestParseRejectsIssuerMismatch(t *testing.T) {
	pair, _ := Issue(7, user.RoleAdmin, "someone-else", "secret", time.Minute, time.Hour)
	if _, err := Parse(pair.AccessToken, "secret", "tagtrack"); err == nil {
		t.Fatal("issuer mismatch must not parse")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	pair, _ := Issue(7, user.RoleAdmin, "tagtrack", "secret", -time.Minute, time.Hour)
	if _, err := Parse(pair.AccessToken, "secret", "tagtrack"); err == nil {
		t.Fatal("expired token must not parse")
	}
}
