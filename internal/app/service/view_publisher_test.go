package service

import (
	"context"
	"errors"
	"testing"
)

func TestViewPublisher_PublishWithoutStream(t *testing.T) {
	var pub *ViewPublisher
	if err := pub.Publish("u1", "1.2.3.4", "ua"); !errors.Is(err, errNoViewStream) {
		t.Fatalf("expected errNoViewStream from nil publisher, got %v", err)
	}

	pub = NewViewPublisher(nil)
	if err := pub.Publish("u1", "1.2.3.4", "ua"); !errors.Is(err, errNoViewStream) {
		t.Fatalf("expected errNoViewStream from unconnected publisher, got %v", err)
	}
}

func TestProfileService_GetProfile_NilPublisher(t *testing.T) {
	deps := profileDeps(nil)
	var pub *ViewPublisher
	deps.Views = pub
	svc := NewProfileService(deps)

	profile, err := svc.GetProfile(context.Background(), "alice", "1.2.3.4", "ua")
	if err != nil {
		t.Fatalf("GetProfile returned error: %v", err)
	}
	if profile == nil || profile.User == nil {
		t.Fatal("expected a complete profile")
	}
}
