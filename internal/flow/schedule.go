package flow

import "github.com/nocaptbsm/aarogya--sarthi/internal/models"

// vaccineGroup is one age band of the recommended immunization schedule.
type vaccineGroup struct {
	Titles   map[models.Language]string
	Vaccines []string
}

// Title returns the localized band title, falling back to English.
func (g vaccineGroup) Title(lang models.Language) string {
	if t, ok := g.Titles[lang]; ok {
		return t
	}
	return g.Titles[models.LanguageEnglish]
}

// The schedule follows India's Universal Immunization Programme bands.
var (
	infantVaccines = vaccineGroup{
		Titles: map[models.Language]string{
			models.LanguageEnglish: "Recommended Vaccines for Infants (0-12 months)",
			models.LanguageHindi:   "शिशुओं (0-12 महीने) के लिए अनुशंसित टीके",
			models.LanguageOdia:    "ଶିଶୁମାନଙ୍କ ପାଇଁ ସୁପାରିଶ କରାଯାଇଥିବା ଟିକା (୦-୧୨ ମାସ)",
			models.LanguageKui:     "କୁନି ପିଲାଙ୍କ ପାଇଁ ଟିକା (୦-୧୨ ମାସ)",
			models.LanguageSantali: "ᱦᱩᱰᱤᱧ ᱜᱤᱫᱽᱨᱟᱹ ᱞᱟᱹᱜᱤᱫ ଟᱤᱠᱟᱹ (᱐-᱑᱒ ᱪᱟᱸᱫᱚ)",
		},
		Vaccines: []string{
			"BCG (Tuberculosis)",
			"Hepatitis B",
			"Oral Polio Vaccine (OPV)",
			"Pentavalent",
			"Rotavirus",
			"PCV",
			"Measles & Rubella (MR)",
		},
	}

	childVaccines = vaccineGroup{
		Titles: map[models.Language]string{
			models.LanguageEnglish: "Recommended Vaccines for Children (1-10 years)",
			models.LanguageHindi:   "बच्चों (1-10 वर्ष) के लिए अनुशंसित टीके",
			models.LanguageOdia:    "ପିଲାମାନଙ୍କ ପାଇଁ ସୁପାରିଶ କରାଯାଇଥିବା ଟିକା (୧-୧୦ ବର୍ଷ)",
			models.LanguageKui:     "ପିଲାଙ୍କ ପାଇଁ ଟିକା (୧-୧୦ ବର୍ଷ)",
			models.LanguageSantali: "ᱜᱤᱫᱽᱨᱟᱹ ᱞᱟᱹᱜᱤᱫ ଟᱤᱠᱟᱹ (᱑-᱑᱐ ᱥᱮᱨᱢᱟ)",
		},
		Vaccines: []string{
			"DTP Booster",
			"OPV Booster",
			"MR 2nd dose",
			"Typhoid Conjugate Vaccine",
			"Hepatitis A",
			"Tdap/Td vaccine",
		},
	}

	adultVaccines = vaccineGroup{
		Titles: map[models.Language]string{
			models.LanguageEnglish: "Recommended Vaccines for Adults (18+)",
			models.LanguageHindi:   "वयस्कों (18+) के लिए अनुशंसित टीके",
			models.LanguageOdia:    "ବୟସ୍କମାନଙ୍କ ପାଇଁ ସୁପାରିଶ କରାଯାଇଥିବା ଟିକା (୧୮+)",
			models.LanguageKui:     "ବଡ଼ ଲୋକଙ୍କ ପାଇଁ ଟିକା (୧୮+)",
			models.LanguageSantali: "ᱦᱟᱲᱟᱢ ᱦᱚᱲ ᱞᱟᱹᱜᱤᱫ ଟᱤᱠᱟᱹ (᱑᱘+)",
		},
		Vaccines: []string{
			"Tdap/Td (every 10 years)",
			"Influenza (yearly)",
			"HPV",
			"Pneumococcal (for adults 65+)",
			"Hepatitis B",
		},
	}
)

// scheduleFor picks the vaccine band for a user's age.
func scheduleFor(age int) vaccineGroup {
	switch {
	case age <= 1:
		return infantVaccines
	case age <= 10:
		return childVaccines
	default:
		return adultVaccines
	}
}
