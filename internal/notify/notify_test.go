package notify

import (
	"context"
	"testing"
	"time"
)

func TestRequestPermission(t *testing.T) {
	ctx := context.Background()

	t.Run("grants by default and remembers", func(t *testing.T) {
		n := NewLogNotifier(nil)
		ok, err := n.RequestPermission(ctx)
		if err != nil || !ok {
			t.Fatalf("expected grant, got %v %v", ok, err)
		}
		if n.Permission() != PermissionGranted {
			t.Errorf("expected granted, got %s", n.Permission())
		}
	})

	t.Run("denial sticks", func(t *testing.T) {
		asked := 0
		n := NewLogNotifier(nil)
		n.Prompt = func(context.Context) bool { asked++; return false }

		for i := 0; i < 2; i++ {
			if ok, _ := n.RequestPermission(ctx); ok {
				t.Error("expected denial")
			}
		}
		if asked != 1 {
			t.Errorf("prompt should run once, ran %d times", asked)
		}
	})
}

func TestShow(t *testing.T) {
	n := NewLogNotifier(nil)
	n.Show("a", "b", nil)
	if len(n.Shown()) != 0 {
		t.Error("notifications without permission must be dropped")
	}

	var got []Notification
	n.Sink = func(note Notification) { got = append(got, note) }
	n.SetPermission(PermissionGranted)
	n.Show("Titre", "Corps", map[string]string{"tag": "event"})

	if len(n.Shown()) != 1 || len(got) != 1 || got[0].Title != "Titre" {
		t.Errorf("expected one shown notification, got %+v", n.Shown())
	}
}

func TestPushMessage(t *testing.T) {
	title, body := PushMessage(PushEvent, "Culte de Louange", "10:00")
	if title != "Nouvel Événement Sacré" || body != "Ne manquez pas : Culte de Louange à 10:00" {
		t.Errorf("unexpected event push %q %q", title, body)
	}

	title, body = PushMessage(PushCommunity, "Sarah M.", "")
	if title != "Mise à jour Communauté" || body != "Sarah M. a partagé un nouveau témoignage." {
		t.Errorf("unexpected community push %q %q", title, body)
	}
}

func TestSimulatePush(t *testing.T) {
	t.Run("delivers after delay", func(t *testing.T) {
		n := NewLogNotifier(nil)
		n.SetPermission(PermissionGranted)

		done := SimulatePush(context.Background(), n, 10*time.Millisecond, PushEvent, "Retraite", "18:00")
		if len(n.Shown()) != 0 {
			t.Error("push should not arrive immediately")
		}
		<-done
		if len(n.Shown()) != 1 {
			t.Errorf("expected 1 notification, got %d", len(n.Shown()))
		}
	})

	t.Run("cancelled before delivery", func(t *testing.T) {
		n := NewLogNotifier(nil)
		n.SetPermission(PermissionGranted)
		ctx, cancel := context.WithCancel(context.Background())

		done := SimulatePush(ctx, n, time.Hour, PushCommunity, "Sarah", "")
		cancel()
		<-done
		if len(n.Shown()) != 0 {
			t.Error("cancelled push must not be shown")
		}
	})
}
