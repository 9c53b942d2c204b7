package i18n

import "github.com/nocaptbsm/aarogya--sarthi/internal/models"

// catalog holds the per-language message tables. English is complete; other
// languages carry the translations available today and fall back to English
// for the rest. The language-selection prompt is language-independent and
// lives only under English.
var catalog = map[models.Language]map[Key]string{
	models.LanguageEnglish: {
		KeyLanguageSelect: "Please select your language:\n" +
			"Reply with a number:\n" +
			"1. English\n" +
			"2. हिन्दी (Hindi)\n" +
			"3. ଓଡ଼ିଆ (Odia)\n" +
			"4. କୁଇ (Kui)\n" +
			"5. ᱥᱟᱱᱛᱟᱲᱤ (Santali)",
		KeyWelcome:   "Welcome to Aarogya Sarthi! To get started, what is your full name?",
		KeyAskAge:    "Great. What is your age?",
		KeyAskGender: "Thanks. What is your gender?\nReply with a number:\n1. Male\n2. Female\n3. Other",
		KeyAskDistrict: "And which district do you live in?\n" +
			"Reply with the number next to your district. Reply 'more' to see more districts.",
		KeyRegistered: "You are now registered! Thank you. We will now show you the main menu.",
		KeyWelcomeBack: "Welcome back, %s! How can I help you today?\n\n" +
			"Reply with a number:\n1. Symptom Checker\n2. Vaccination Reminders\n3. Preventive Healthcare Tips\n4. Outbreak Alerts\n5. Exit",
		KeyMainMenu: "How can I help you today?\n\n" +
			"Reply with a number:\n1. Symptom Checker\n2. Vaccination Reminders\n3. Preventive Healthcare Tips\n4. Outbreak Alerts\n5. Exit",
		KeySymptomCheckerStart: "You've selected the Symptom Checker. Please describe your symptoms. To exit the checker at any time, just say 'exit'.",
		KeyExitMessage:         "Thank you for using Aarogya Sarthi. Have a healthy day!",
		KeySayHi:               "Welcome! Please say 'hi' to start.",
		KeyInvalidOption:       "Invalid option. Please reply with a number from 1 to 5.",
		KeyInvalidLanguage:     "Invalid selection.",
		KeyInvalidAge:          "That doesn't look like a valid age. Please reply with a number between 1 and 120.",
		KeyInvalidGender:       "Invalid selection. Please reply with 1, 2 or 3.",
		KeyInvalidDistrict:     "Invalid district. Please reply with one of the listed numbers, or 'more' for more districts.",
		KeyNoMoreDistricts:     "There are no more districts to show.",
		KeyMoreHint:            "Reply 'more' to see more districts.",
		KeyVaccineIntro:        "Reply with a number to find a nearby clinic for that vaccine:",
		KeyInvalidChoice:       "Invalid choice. Please pick a number from the list.",
		KeyClinicsFoundIntro:   "Here are some centers near you:",
		KeyNoClinicsFound:      "Sorry, I couldn't find any centers with that vaccine near you. Please check with local health authorities.",
		KeyClinicFinderOffline: "Sorry, the clinic finder service is not configured correctly.",
		KeyClinicSearchError:   "Sorry, I'm having trouble searching for clinics right now.",
		KeyAlertsUnavailable:   "Sorry, I couldn't check for outbreak alerts right now. Please try again later.",
		KeyAddressLabel:        "Address",
		KeyCallAheadNote:       "Please call ahead to confirm vaccine availability.",
		KeyReturnToMenuHint:    "Reply 'menu' to return to the main menu.",
		KeyPreventiveTipsIntro: "Here's a health tip for your area:",
		KeyAlertIntro:          "⚠️ Health Alert:",
		KeyNoNewAlerts:         "There are no new outbreak alerts for your area right now.",
		KeyAIUnavailable:       "Sorry, I'm having trouble connecting to my AI brain right now. Please try again later.",
		KeyRegistrationError:   "Sorry, we could not save your registration. Please try again in a moment.",
		KeySomethingWentWrong:  "Sorry, something went wrong. Please try again.",
	},
	models.LanguageHindi: {
		KeyWelcome:   "आरोग्य सारथी में आपका स्वागत है! शुरू करने के लिए, आपका पूरा नाम क्या है?",
		KeyAskAge:    "बढ़िया। आपकी उम्र क्या है?",
		KeyAskGender: "धन्यवाद। आपका लिंग क्या है?\nएक नंबर के साथ उत्तर दें:\n1. पुरुष\n2. महिला\n3. अन्य",
		KeyRegistered: "अब आप पंजीकृत हो गए हैं! धन्यवाद। अब हम आपको मुख्य मेनू दिखाएंगे।",
		KeyWelcomeBack: "वापस स्वागत है, %s! मैं आज आपकी कैसे मदद कर सकता हूँ?\n\n" +
			"एक नंबर के साथ उत्तर दें:\n1. लक्षण परीक्षक\n2. टीकाकरण अनुस्मारक\n3. निवारक स्वास्थ्य युक्तियाँ\n4. प्रकोप अलर्ट\n5. बाहर निकलें",
		KeyMainMenu: "मैं आज आपकी कैसे मदद कर सकता हूँ?\n\n" +
			"एक नंबर के साथ उत्तर दें:\n1. लक्षण परीक्षक\n2. टीकाकरण अनुस्मारक\n3. निवारक स्वास्थ्य युक्तियाँ\n4. प्रकोप अलर्ट\n5. बाहर निकलें",
		KeySymptomCheckerStart: "आपने लक्षण परीक्षक चुना है। कृपया अपने लक्षणों का वर्णन करें। चेकर से किसी भी समय बाहर निकलने के लिए, बस 'exit' कहें।",
		KeyExitMessage:         "आरोग्य सारथी का उपयोग करने के लिए धन्यवाद। आपका दिन स्वस्थ रहे!",
		KeyAlertIntro:          "⚠️ स्वास्थ्य चेतावनी:",
	},
	// Odia, Kui and Santali translations for router messages are pending;
	// these languages fall back to English here. Feature data tables
	// (vaccine titles, seasonal tips) carry their own localized text.
	models.LanguageOdia: {
		KeyAlertIntro: "⚠️ ସ୍ୱାସ୍ଥ୍ୟ ସତର୍କତା:",
	},
	models.LanguageKui:     {},
	models.LanguageSantali: {},
}
