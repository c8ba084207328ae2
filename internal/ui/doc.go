// Package ui implements the interactive terminal application using bubbletea's Elm architecture.
//
// The root [Model] shows the sign-in form until the auth gate reports a signed-in member,
// then a navigation bar over ten tab views:
//  1. Accueil : hero carousel, daily verse and meditation, live player area, events, transparency chart
//  2. Dons : donation form with Wave instructions
//  3. Bible : book and chapter selection, reading, explanation and narration
//  4. Quiz : biblical (generated) or church-life (curated) quiz
//  5. Podcasts : sermon library with upload and delete
//  6. Galerie : photos with generated captions
//  7. Communauté : testimonies
//  8. Espace Membre : profile, preferences, donation history, journey
//  9. Paramètres : theme, notifications, system status, cache repair
//  10. Admin : content management
//
// A chat overlay (ctrl+o) and a player bar sit above every tab.
//
// Background requests are tagged with a generation from a per-tab [tasks.Tracker].
// Leaving a tab advances its tracker, so late results arrive as messages that are dropped.
package ui
