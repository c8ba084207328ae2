package models

// Defaults are returned by functions so callers can mutate the result without touching
// the compiled-in values.

const unsplash = "https://images.unsplash.com/"

// DefaultHeroSlides is used until an admin saves the carousel.
func DefaultHeroSlides() []HeroSlide {
	return []HeroSlide{
		{
			Image:    unsplash + "photo-1438032005730-c779502df39b?auto=format&fit=crop&q=80&w=1920",
			Title:    "Bienvenue au <br /> <span class='italic text-[#c5a059]'>Tabernacle de la Foi</span>",
			Subtitle: "Un sanctuaire où chaque âme trouve sa place. Rejoignez notre communauté dès aujourd'hui.",
		},
		{
			Image:    unsplash + "photo-1515162305285-0293e4767cc2?auto=format&fit=crop&q=80&w=1920",
			Title:    "Bâtir Ensemble <br /> <span class='italic text-[#c5a059]'>Votre Destinée Divine</span>",
			Subtitle: "Découvrez nos enseignements bibliques et participez à nos projets communautaires.",
		},
		{
			Image:    unsplash + "photo-1519491050282-cf00c82424b4?auto=format&fit=crop&q=80&w=1920",
			Title:    "La Louange <br /> <span class='italic text-[#c5a059]'>Ouvre les Portes</span>",
			Subtitle: "Venez célébrer la grandeur du Seigneur avec nos chorales passionnées.",
		},
	}
}

// DefaultVideos is the sermon archive shipped with the app.
func DefaultVideos() []Video {
	return []Video{
		{ID: "dQw4w9WgXcQ", Title: "La Puissance de la Prière", Date: "12 Mai 2024", Views: "24k", Img: unsplash + "photo-1550751827-4bd374c3f58b?auto=format&fit=crop&q=80&w=400"},
		{ID: "dQw4w9WgXcQ", Title: "Le Pardon au Quotidien", Date: "05 Mai 2024", Views: "18k", Img: unsplash + "photo-1507679799987-c73779587ccf?auto=format&fit=crop&q=80&w=400"},
	}
}

// DefaultLiveVideo is the live stream pointer shipped with the app.
func DefaultLiveVideo() Video {
	return Video{ID: "dQw4w9WgXcQ", Title: "Culte de Dimanche - En Direct", IsLive: true}
}

// DefaultPhotos is the gallery shipped with the app.
func DefaultPhotos() []PhotoItem {
	return []PhotoItem{
		{ID: "1", URL: unsplash + "photo-1548625313-040497505311?auto=format&fit=crop&q=80&w=800", Event: "Pâques", Description: "Célébration matinale au Tabernacle de la Foi."},
		{ID: "2", URL: unsplash + "photo-1438232992991-995b7058bbb3?auto=format&fit=crop&q=80&w=800", Event: "Retraite", Description: "Moments de communion spirituelle au Tabernacle."},
		{ID: "3", URL: unsplash + "photo-1519491050282-cf00c82424b4?auto=format&fit=crop&q=80&w=800", Event: "Chorale", Description: "Louanges divines par notre chorale."},
	}
}

// DefaultQuizQuestions is the admin-curated pool shipped with the app.
func DefaultQuizQuestions() []QuizQuestion {
	return []QuizQuestion{
		{
			Question:      "En quelle année le Tabernacle de la Foi a-t-il été fondé ?",
			Options:       []string{"1995", "2000", "2010", "2015"},
			CorrectAnswer: 1,
			Explanation:   "Le Tabernacle de la Foi a ouvert ses portes au début du nouveau millénaire.",
		},
	}
}

// DefaultPodcasts is the sermon library shipped with the app.
func DefaultPodcasts() []PodcastEpisode {
	return []PodcastEpisode{
		{ID: "p1", Title: "La Foi en Temps Modernes", Author: "Pasteur Jean", Date: "12 Jan 2024", Description: "Une réflexion profonde sur la spiritualité au 21ème siècle.", Img: unsplash + "photo-1557682224-5b8590cd9ec5?auto=format&fit=crop&q=80&w=400", Type: EpisodeAudio, AudioURL: "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-1.mp3", Duration: "45:20"},
		{ID: "p2", Title: "L'Art du Pardon", Author: "Sœur Marie", Date: "05 Jan 2024", Description: "Comment le pardon peut libérer votre âme.", Img: unsplash + "photo-1516280440614-37939bbacd81?auto=format&fit=crop&q=80&w=400", Type: EpisodeText, Duration: "12 min"},
		{ID: "p3", Title: "Bâtir sa Communauté", Author: "Dr. Lucas", Date: "28 Dec 2023", Description: "Les piliers d'une église forte et unie.", Img: unsplash + "photo-1511632765486-a01980e01a18?auto=format&fit=crop&q=80&w=400", Type: EpisodeVideo, Duration: "32:15"},
		{ID: "p4", Title: "Prière & Méditation", Author: "Équipe Louange", Date: "15 Dec 2023", Description: "Session de louange acoustique et moments de silence.", Img: unsplash + "photo-1507692049790-de58290a4334?auto=format&fit=crop&q=80&w=400", Type: EpisodeAudio, AudioURL: "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-2.mp3", Duration: "58:00"},
	}
}

// NewHeroSlide is the template an admin starts from.
func NewHeroSlide() HeroSlide {
	return HeroSlide{
		Image:    unsplash + "photo-1438032005730-c779502df39b?auto=format&fit=crop&q=80&w=1920",
		Title:    "Nouveau Message Spirituel",
		Subtitle: "Sous-titre inspirant pour la communauté.",
	}
}

// NewPhotoItem is the template an admin starts from; the caller assigns the id.
func NewPhotoItem(id string) PhotoItem {
	return PhotoItem{
		ID:          id,
		URL:         unsplash + "photo-1510519133417-2407bcaf0afd?auto=format&fit=crop&q=80&w=800",
		Event:       "Événement",
		Description: "Nouvelle capture pour le Tabernacle.",
	}
}

// NewQuizQuestion is the template an admin starts from.
func NewQuizQuestion() QuizQuestion {
	return QuizQuestion{
		Question:      "Nouvelle question sur le Tabernacle",
		Options:       []string{"Option A", "Option B", "Option C", "Option D"},
		CorrectAnswer: 0,
		Explanation:   "Explication de la réponse.",
	}
}

// NewVideo is the template an admin starts from.
func NewVideo() Video {
	return Video{
		ID:    "dQw4w9WgXcQ",
		Title: "Nouvelle prédication",
		Date:  "Aujourd'hui",
		Views: "0",
		Img:   unsplash + "photo-1507679799987-c73779587ccf?auto=format&fit=crop&q=80&w=400",
	}
}
