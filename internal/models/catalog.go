package models

// DailyVerseLabel and DailyVerseText are shown on the home view.
const (
	DailyVerseLabel = "Jean 8:12"
	DailyVerseText  = "Je suis la lumière du monde; celui qui me suit ne marchera pas dans les ténèbres."
)

// EventTypes lists the calendar filters after "All".
var EventTypes = []string{"Service", "Conference", "Retreat", "Community"}

// Events is the static calendar.
func Events() []ChurchEvent {
	return []ChurchEvent{
		{ID: "1", Title: "Culte de Louange", Date: "Dim 16 Juin", Time: "10:00", Type: "Service", Image: "https://picsum.photos/id/111/400/250"},
		{ID: "2", Title: "Retraite Spirituelle", Date: "Ven 21 Juin", Time: "18:00", Type: "Retreat", Image: "https://picsum.photos/id/112/400/250"},
		{ID: "3", Title: "Conférence Jeunesse", Date: "Sam 22 Juin", Time: "14:30", Type: "Conference", Image: "https://picsum.photos/id/113/400/250"},
		{ID: "4", Title: "Culte de Jeudi", Date: "Jeu 20 Juin", Time: "19:00", Type: "Service", Image: "https://picsum.photos/id/114/400/250"},
		{ID: "5", Title: "Étude Biblique", Date: "Mer 19 Juin", Time: "18:30", Type: "Community", Image: "https://picsum.photos/id/115/400/250"},
		{ID: "6", Title: "Répétition Chorale", Date: "Sam 22 Juin", Time: "09:00", Type: "Community", Image: "https://picsum.photos/id/116/400/250"},
	}
}

// FilterEvents keeps events of the given type; "All" or "" keeps everything.
func FilterEvents(events []ChurchEvent, kind string) []ChurchEvent {
	if kind == "" || kind == "All" {
		return events
	}
	var out []ChurchEvent
	for _, e := range events {
		if e.Type == kind {
			out = append(out, e)
		}
	}
	return out
}

// Testimonies is the static community feed.
func Testimonies() []Testimony {
	return []Testimony{
		{ID: "1", User: "Sarah M.", Content: "Une grâce infinie lors du dernier culte. J'ai ressenti une paix que je ne saurais expliquer.", Image: unsplash + "photo-1490730141103-6cac27aaab94?auto=format&fit=crop&q=80&w=800", Likes: 124, Date: "Hier"},
		{ID: "2", User: "Marc-André", Content: "Le groupe de prière matinale a changé ma vie. On se sent soutenu, on n'est plus seul face aux épreuves.", Image: unsplash + "photo-1511632765486-a01980e01a18?auto=format&fit=crop&q=80&w=800", Likes: 89, Date: "Il y a 2 jours"},
		{ID: "3", User: "Bernadette K.", Content: "Reconnaissante pour la bourse d'études accordée à mon fils. Dieu est bon !", Likes: 256, Date: "Il y a 5 jours"},
	}
}

// ForumTopic is a discussion thread shown in the community forum.
type ForumTopic struct {
	User    string
	Topic   string
	Replies int
	Time    string
}

// ForumTopics is the static forum listing.
func ForumTopics() []ForumTopic {
	return []ForumTopic{
		{User: "Marie D.", Topic: "Comment organisez-vous vos groupes de prière matinale ?", Replies: 24, Time: "Il y a 2h"},
		{User: "Paul K.", Topic: "Questions sur le prochain séminaire de couple", Replies: 12, Time: "Hier"},
		{User: "Julie L.", Topic: "Recrutement de nouveaux bénévoles pour la chorale des enfants", Replies: 12, Time: "Hier"},
	}
}

// CommunityGroups pairs each active group with its member count label.
var CommunityGroups = [][2]string{
	{"Prière Matinale", "450 membres"},
	{"Chorale", "120 membres"},
	{"Jeunesse Connectée", "890 membres"},
	{"Étude Biblique", "230 membres"},
}

// DonationHistory is the static gift history of the member space.
func DonationHistory() []DonationHistoryItem {
	return []DonationHistoryItem{
		{ID: "1", Date: "12 Juin 2024", Amount: 5000, Method: string(PaymentWave), Status: "Completed"},
		{ID: "2", Date: "01 Juin 2024", Amount: 15000, Method: string(PaymentOrangeMoney), Status: "Completed"},
		{ID: "3", Date: "15 Mai 2024", Amount: 5000, Method: string(PaymentWave), Status: "Completed"},
	}
}

// TransparencyTotals is the monthly donations chart.
func TransparencyTotals() []MonthlyTotal {
	return []MonthlyTotal{
		{Month: "Jan", Amount: 12400},
		{Month: "Feb", Amount: 15600},
		{Month: "Mar", Amount: 18900},
		{Month: "Apr", Amount: 21000},
		{Month: "May", Amount: 16500},
		{Month: "Jun", Amount: 24000},
	}
}

// OldTestament lists the books in Louis Segond order.
var OldTestament = []string{
	"Genèse", "Exode", "Lévitique", "Nombres", "Deutéronome", "Josué", "Juges", "Ruth",
	"1 Samuel", "2 Samuel", "1 Rois", "2 Rois", "1 Chroniques", "2 Chroniques", "Esdras", "Néhémie", "Esther", "Job",
	"Psaumes", "Proverbes", "Ecclésiaste", "Cantique des Cantiques", "Ésaïe", "Jérémie",
	"Lamentations", "Ézéchiel", "Daniel", "Osée", "Joël", "Amos", "Abdias", "Jonas",
	"Michée", "Nahum", "Habacuc", "Sophonie", "Aggée", "Zacharie", "Malachie",
}

// NewTestament lists the books in Louis Segond order.
var NewTestament = []string{
	"Matthieu", "Marc", "Luc", "Jean", "Actes", "Romains", "1 Corinthiens", "2 Corinthiens",
	"Galates", "Éphésiens", "Philippiens", "Colossiens", "1 Thessaloniciens", "2 Thessaloniciens",
	"1 Timothée", "2 Timothée", "Tite", "Philémon", "Hébreux", "Jacques", "1 Pierre",
	"2 Pierre", "1 Jean", "2 Jean", "3 Jean", "Jude", "Apocalypse",
}

// IsBook reports whether name is a known book of either testament.
func IsBook(name string) bool {
	for _, list := range [][]string{OldTestament, NewTestament} {
		for _, b := range list {
			if b == name {
				return true
			}
		}
	}
	return false
}
