// Package models defines the domain records of the Tabernacle de la Foi platform.
//
// The package contains three kinds of declarations:
//
// 1. Persisted records, serialized as JSON into named collections:
//   - [HeroSlide] : home carousel slides (titles may embed markup)
//   - [Video] : sermon archive entries and the live stream pointer
//   - [PhotoItem] : gallery photos
//   - [QuizQuestion] : admin-curated quiz questions
//   - [PodcastEpisode] : sermon library entries
//   - [UserProfile] : the member profile, with [UserStep] and [Preferences]
//
// 2. Enumerations with validation ([StepStatus], [FontSize], [EpisodeType], [PaymentMethod], [Theme]).
//
// 3. Default collections and static catalogs (events, testimonies, donation history, daily verse,
// bible book lists) that are compiled in rather than stored.
package models
