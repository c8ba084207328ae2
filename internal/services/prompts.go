package services

import "fmt"

const persona = `Vous êtes l'assistant spirituel de l'église "Le Tabernacle de la Foi".
Votre mission est d'accompagner les fidèles avec amour, sagesse biblique et empathie.
Répondez aux questions sur la foi, proposez des prières et guidez les membres dans leur vie chrétienne au sein du Tabernacle.`

const chatThinkingBudget = 32768

func chapterTextPrompt(book string, chapter int) string {
	return fmt.Sprintf("Donne-moi le texte intégral du chapitre %d du livre de %s dans la version Louis Segond. Réponds uniquement en JSON.", chapter, book)
}

func explanationPrompt(book string, chapter int) string {
	return fmt.Sprintf("Donne une explication théologique et pratique courte du chapitre %d de %s pour un fidèle du Tabernacle de la Foi.", chapter, book)
}

func meditationPrompt(verse string) string {
	return fmt.Sprintf("Donne une méditation courte (2-3 lignes) pour ce verset : %s. Soyez encourageant.", verse)
}

func quizPrompt(difficulty string) string {
	return fmt.Sprintf(`Génère une question de quiz biblique captivante de niveau %s pour les fidèles de l'église "Le Tabernacle de la Foi".
La question doit porter sur des faits bibliques, des personnages ou des enseignements profonds.
L'explication doit être riche en sagesse spirituelle. Réponds uniquement au format JSON.`, difficulty)
}

func captionPrompt(description string) string {
	return fmt.Sprintf("Génère une légende spirituelle et poétique pour cette photo du Tabernacle de la Foi : %s", description)
}

func narrationPrompt(text string) string {
	return "Lis ce texte biblique solennellement : " + text
}

// schema is the subset of the OpenAPI schema object the service accepts.
type schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*schema `json:"properties,omitempty"`
	Items       *schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

var chapterSchema = &schema{
	Type: "OBJECT",
	Properties: map[string]*schema{
		"verses": {
			Type: "ARRAY",
			Items: &schema{
				Type: "OBJECT",
				Properties: map[string]*schema{
					"number": {Type: "INTEGER"},
					"text":   {Type: "STRING"},
				},
				Required: []string{"number", "text"},
			},
		},
	},
	Required: []string{"verses"},
}

var quizSchema = &schema{
	Type: "OBJECT",
	Properties: map[string]*schema{
		"question":      {Type: "STRING", Description: "La question posée."},
		"options":       {Type: "ARRAY", Items: &schema{Type: "STRING"}, Description: "Quatre options de réponse."},
		"correctAnswer": {Type: "INTEGER", Description: "L'index de la bonne réponse (0-3)."},
		"explanation":   {Type: "STRING", Description: "Une méditation théologique expliquant pourquoi c'est la bonne réponse."},
	},
	Required: []string{"question", "options", "correctAnswer", "explanation"},
}
