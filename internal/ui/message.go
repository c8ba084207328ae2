package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/tabernacle/internal/auth"
	"github.com/desertthunder/tabernacle/internal/donation"
	"github.com/desertthunder/tabernacle/internal/models"
	"github.com/desertthunder/tabernacle/internal/notify"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all asynchronous results in the TUI (Elm-style message union).
// gen is the tracker generation the request was issued under.
type Msg struct {
	kind MsgKind
	gen  uint64
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgAuthResult MsgKind = iota
	MsgChatReply
	MsgQuizQuestion
	MsgChapterLoaded
	MsgExplanation
	MsgMeditation
	MsgNarrationReady
	MsgPlaybackDone
	MsgCaption
	MsgDonation
	MsgReminder
	MsgNotification
	MsgStatus
	MsgRepairStep
	MsgAnchor
	MsgToastExpired
	MsgPermission
)

type authResult struct {
	id  auth.Identity
	err error
}

// authResultMsg is the constructor for [MsgAuthResult]
func authResultMsg(gen uint64, id auth.Identity, err error) Msg {
	return Msg{kind: MsgAuthResult, gen: gen, data: authResult{id, err}}
}

// chatReplyMsg is the constructor for [MsgChatReply]
func chatReplyMsg(gen uint64, reply string) Msg {
	return Msg{kind: MsgChatReply, gen: gen, data: reply}
}

type quizResult struct {
	question models.QuizQuestion
	err      error
}

// quizQuestionMsg is the constructor for [MsgQuizQuestion]
func quizQuestionMsg(gen uint64, q models.QuizQuestion, err error) Msg {
	return Msg{kind: MsgQuizQuestion, gen: gen, data: quizResult{q, err}}
}

type chapterResult struct {
	book    string
	chapter int
	verses  []models.Verse
	err     error
}

// chapterLoadedMsg is the constructor for [MsgChapterLoaded]
func chapterLoadedMsg(gen uint64, book string, chapter int, verses []models.Verse, err error) Msg {
	return Msg{kind: MsgChapterLoaded, gen: gen, data: chapterResult{book, chapter, verses, err}}
}

// explanationMsg is the constructor for [MsgExplanation]
func explanationMsg(gen uint64, text string) Msg {
	return Msg{kind: MsgExplanation, gen: gen, data: text}
}

// meditationMsg is the constructor for [MsgMeditation]
func meditationMsg(gen uint64, text string) Msg {
	return Msg{kind: MsgMeditation, gen: gen, data: text}
}

type narration struct {
	pcm []byte
	err error
}

// narrationReadyMsg is the constructor for [MsgNarrationReady]
func narrationReadyMsg(gen uint64, pcm []byte, err error) Msg {
	return Msg{kind: MsgNarrationReady, gen: gen, data: narration{pcm, err}}
}

// playbackDoneMsg is the constructor for [MsgPlaybackDone]; gen is the player's generation.
func playbackDoneMsg(gen uint64, err error) Msg {
	return Msg{kind: MsgPlaybackDone, gen: gen, data: err}
}

type caption struct {
	photoID string
	text    string
}

// captionMsg is the constructor for [MsgCaption]
func captionMsg(gen uint64, photoID, text string) Msg {
	return Msg{kind: MsgCaption, gen: gen, data: caption{photoID, text}}
}

type donationResult struct {
	receipt donation.Receipt
	err     error
}

// donationMsg is the constructor for [MsgDonation]
func donationMsg(gen uint64, r donation.Receipt, err error) Msg {
	return Msg{kind: MsgDonation, gen: gen, data: donationResult{r, err}}
}

type reminder struct {
	eventID string
	granted bool
}

// reminderMsg is the constructor for [MsgReminder]
func reminderMsg(gen uint64, eventID string, granted bool) Msg {
	return Msg{kind: MsgReminder, gen: gen, data: reminder{eventID, granted}}
}

// notificationMsg is the constructor for [MsgNotification]
func notificationMsg(n notify.Notification) Msg {
	return Msg{kind: MsgNotification, data: n}
}

type systemStatus struct {
	latency time.Duration
	err     error
	storage int64
}

// statusMsg is the constructor for [MsgStatus]
func statusMsg(gen uint64, latency time.Duration, err error, storage int64) Msg {
	return Msg{kind: MsgStatus, gen: gen, data: systemStatus{latency, err, storage}}
}

// repairStepMsg is the constructor for [MsgRepairStep]
func repairStepMsg(gen uint64, step int) Msg {
	return Msg{kind: MsgRepairStep, gen: gen, data: step}
}

// anchorMsg is the constructor for [MsgAnchor]; gen is the router generation of the jump.
func anchorMsg(gen uint64) Msg {
	return Msg{kind: MsgAnchor, gen: gen}
}

// toastExpiredMsg is the constructor for [MsgToastExpired]
func toastExpiredMsg(id int) Msg {
	return Msg{kind: MsgToastExpired, data: id}
}

// permissionMsg is the constructor for [MsgPermission]
func permissionMsg(gen uint64, granted bool, err error) Msg {
	return Msg{kind: MsgPermission, gen: gen, data: permission{granted, err}}
}

type permission struct {
	granted bool
	err     error
}
