// package notify simulates the permission and display side of push notifications.
package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Notifier asks for permission and shows notifications. Show is fire-and-forget.
type Notifier interface {
	RequestPermission(ctx context.Context) (bool, error)
	Show(title, body string, meta map[string]string)
}

// Permission mirrors the three states a platform notification permission can be in.
type Permission int

const (
	PermissionDefault Permission = iota
	PermissionGranted
	PermissionDenied
)

func (p Permission) String() string {
	switch p {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	}
	return "default"
}

// Notification is one displayed message.
type Notification struct {
	Title string
	Body  string
	Meta  map[string]string
	At    time.Time
}

// LogNotifier keeps shown notifications in memory and logs them. Permission is asked once:
// the Prompt function decides, and its answer sticks.
type LogNotifier struct {
	Prompt func(ctx context.Context) bool
	Sink   func(Notification)

	logger *log.Logger
	mu     sync.Mutex
	perm   Permission
	shown  []Notification
}

// NewLogNotifier creates a notifier that grants permission when asked, unless prompt says otherwise.
func NewLogNotifier(logger *log.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Permission returns the current permission state.
func (n *LogNotifier) Permission() Permission {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.perm
}

// SetPermission overrides the stored answer, as a settings toggle would.
func (n *LogNotifier) SetPermission(p Permission) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.perm = p
}

func (n *LogNotifier) RequestPermission(ctx context.Context) (bool, error) {
	n.mu.Lock()
	perm := n.perm
	n.mu.Unlock()

	switch perm {
	case PermissionGranted:
		return true, nil
	case PermissionDenied:
		return false, nil
	}

	granted := true
	if n.Prompt != nil {
		granted = n.Prompt(ctx)
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	n.mu.Lock()
	if granted {
		n.perm = PermissionGranted
	} else {
		n.perm = PermissionDenied
	}
	n.mu.Unlock()
	return granted, nil
}

// Show records the notification when permission is granted and drops it otherwise.
func (n *LogNotifier) Show(title, body string, meta map[string]string) {
	n.mu.Lock()
	if n.perm != PermissionGranted {
		n.mu.Unlock()
		return
	}
	note := Notification{Title: title, Body: body, Meta: meta, At: time.Now()}
	n.shown = append(n.shown, note)
	sink := n.Sink
	n.mu.Unlock()

	if n.logger != nil {
		n.logger.Info("notification", "title", title, "body", body)
	}
	if sink != nil {
		sink(note)
	}
}

// Shown returns a copy of every displayed notification.
func (n *LogNotifier) Shown() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notification(nil), n.shown...)
}

// PushKind selects the wording of a simulated push.
type PushKind string

const (
	PushEvent     PushKind = "event"
	PushCommunity PushKind = "community"
)

// PushDelay is how long a simulated push takes to arrive.
const PushDelay = 2 * time.Second

// PushMessage builds the title and body of a simulated push.
// For events, subject is the event title and detail its time; for community, subject is the author.
func PushMessage(kind PushKind, subject, detail string) (string, string) {
	if kind == PushEvent {
		return "Nouvel Événement Sacré", fmt.Sprintf("Ne manquez pas : %s à %s", subject, detail)
	}
	return "Mise à jour Communauté", fmt.Sprintf("%s a partagé un nouveau témoignage.", subject)
}

// SimulatePush shows a push after delay unless ctx ends first. It returns immediately.
// Nothing is shown when permission was not granted.
func SimulatePush(ctx context.Context, n Notifier, delay time.Duration, kind PushKind, subject, detail string) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
		title, body := PushMessage(kind, subject, detail)
		n.Show(title, body, map[string]string{"tag": string(kind)})
	}()
	return done
}
