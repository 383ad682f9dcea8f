package draft

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-studio/internal/types"
)

// payloadShape is the JSON contract the generator is asked to honor. The
// reconciler does not trust it; this is guidance, not validation.
const payloadShape = `{
  "summary": "string",
  "experience": [{"position": "string", "company": "string", "period": "string", "description": "string"}],
  "education": [{"degree": "string", "school": "string", "period": "string", "description": "string"}],
  "skills": ["string"],
  "languages": [{"name": "string", "level": "Beginner|Intermediate|Advanced|Native"}],
  "interests": ["string"]
}`

// BuildDraftPrompt constructs the generation prompt from the seed facts and
// the UI locale. The locale controls the language of the generated content,
// not of the JSON keys.
func BuildDraftPrompt(seed types.BasicInfo, locale string) string {
	var sb strings.Builder

	if locale == "fr" {
		sb.WriteString("Tu es un expert en rédaction de CV. Génère un CV professionnel complet basé sur ces informations minimales:\n\n")
	} else {
		sb.WriteString("You are an expert CV writer. Generate a complete professional CV based on these minimal facts:\n\n")
	}

	writeFact(&sb, locale, "Nom", "Name", seed.Name)
	writeFact(&sb, locale, "Email", "Email", seed.Email)
	writeFact(&sb, locale, "Téléphone", "Phone", seed.Phone)
	writeFact(&sb, locale, "Titre/Poste", "Title/Role", seed.Title)
	writeFact(&sb, locale, "Expérience", "Experience", seed.ExperienceHint)
	writeFact(&sb, locale, "Formation", "Education", seed.EducationHint)

	if locale == "fr" {
		sb.WriteString("\nDéveloppe ce CV avec:\n")
		sb.WriteString("- Un résumé professionnel engageant (2-3 phrases)\n")
		sb.WriteString("- 3-4 expériences professionnelles détaillées avec responsabilités et réalisations\n")
		sb.WriteString("- 2-3 formations avec détails\n")
		sb.WriteString("- 6-8 compétences clés pertinentes\n")
		sb.WriteString("- 2-3 langues avec niveaux\n")
		sb.WriteString("- 2-3 centres d'intérêt professionnels\n\n")
		sb.WriteString("Retourne UNIQUEMENT un JSON valide au format suivant (sans markdown ni texte supplémentaire):\n")
	} else {
		sb.WriteString("\nExpand this CV with:\n")
		sb.WriteString("- An engaging professional summary (2-3 sentences)\n")
		sb.WriteString("- 3-4 detailed work experiences with responsibilities and achievements\n")
		sb.WriteString("- 2-3 education entries with details\n")
		sb.WriteString("- 6-8 relevant key skills\n")
		sb.WriteString("- 2-3 languages with levels\n")
		sb.WriteString("- 2-3 professional interests\n\n")
		sb.WriteString("Return ONLY valid JSON in the following format (no markdown, no extra text):\n")
	}
	sb.WriteString(payloadShape)
	sb.WriteString("\n")

	return sb.String()
}

// writeFact appends one labeled seed fact, marking missing values explicitly
// so the model does not invent contact details.
func writeFact(sb *strings.Builder, locale, labelFr, labelEn, value string) {
	label := labelEn
	missing := "Not specified"
	if locale == "fr" {
		label = labelFr
		missing = "Non spécifié"
	}
	if value == "" {
		value = missing
	}
	fmt.Fprintf(sb, "%s: %s\n", label, value)
}
