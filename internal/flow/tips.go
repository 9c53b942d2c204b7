package flow

import (
	"context"
	"fmt"
	"time"

	"github.com/nocaptbsm/aarogya--sarthi/internal/i18n"
	"github.com/nocaptbsm/aarogya--sarthi/internal/models"
)

// season is one of India's three broad weather seasons.
type season string

const (
	seasonSummer  season = "summer"
	seasonMonsoon season = "monsoon"
	seasonWinter  season = "winter"
)

// seasonTips carries the localized title and tip text for one season.
type seasonTips struct {
	Titles map[models.Language]string
	Tips   map[models.Language]string
}

func (s seasonTips) title(lang models.Language) string {
	if t, ok := s.Titles[lang]; ok {
		return t
	}
	return s.Titles[models.LanguageEnglish]
}

func (s seasonTips) tip(lang models.Language) string {
	if t, ok := s.Tips[lang]; ok {
		return t
	}
	return s.Tips[models.LanguageEnglish]
}

var tipsBySeason = map[season]seasonTips{
	seasonSummer: {
		Titles: map[models.Language]string{
			models.LanguageEnglish: "Summer Health Tips",
			models.LanguageHindi:   "गर्मी के स्वास्थ्य सुझाव",
			models.LanguageOdia:    "ଗ୍ରୀଷ୍ମ ସ୍ୱାସ୍ଥ୍ୟ ପରାମର୍ଶ",
			models.LanguageKui:     "ଗ୍ରୀଷ୍ମ ଦିନର ସ୍ୱାସ୍ଥ୍ୟ କଥା",
		},
		Tips: map[models.Language]string{
			models.LanguageEnglish: "Stay hydrated by drinking plenty of water. Avoid direct sun between 12 PM and 4 PM. Eat light, seasonal fruits.",
			models.LanguageHindi:   "खूब पानी पीकर हाइड्रेटेड रहें। दोपहर 12 बजे से 4 बजे के बीच सीधी धूप से बचें। हल्के, मौसमी फल खाएं।",
			models.LanguageOdia:    "ପର୍ଯ୍ୟାପ୍ତ ପାଣି ପିଇ ହାଇଡ୍ରେଟେଡ୍ ରୁହନ୍ତୁ। ଦିନ 12ଟାରୁ 4ଟା ମଧ୍ୟରେ ସିଧାସଳଖ ସୂର୍ଯ୍ୟ କିରଣରୁ ଦୂରେଇ ରୁହନ୍ତୁ। ହାଲୁକା, ଋତୁକାଳୀନ ଫଳ ଖାଆନ୍ତୁ।",
			models.LanguageKui:     "ବେଶୀ ପାଣି ପିଅନ୍ତୁ। ଦିନ 12ଟାରୁ 4ଟା ଭିତରେ ଖରାକୁ ଯାଆନ୍ତୁ ନାହିଁ। ହାଲୁକା ଫଳ ଖାଆନ୍ତୁ।",
		},
	},
	seasonMonsoon: {
		Titles: map[models.Language]string{
			models.LanguageEnglish: "Monsoon Health Tips",
			models.LanguageHindi:   "मानसून के स्वास्थ्य सुझाव",
			models.LanguageOdia:    "ମୌସୁମୀ ସ୍ୱାସ୍ଥ୍ୟ ପରାମର୍ଶ",
			models.LanguageKui:     "ବର୍ଷା ଦିନର ସ୍ୱାସ୍ଥ୍ୟ କଥା",
		},
		Tips: map[models.Language]string{
			models.LanguageEnglish: "Protect yourself from mosquitoes to prevent Dengue and Malaria. Drink boiled water and avoid street food to prevent water-borne diseases.",
			models.LanguageHindi:   "डेंगू और मलेरिया से बचने के लिए खुद को मच्छरों से बचाएं। पानी से होने वाली बीमारियों से बचने के लिए उबला हुआ पानी पिएं और स्ट्रीट फूड से बचें।",
			models.LanguageOdia:    "ଡେଙ୍ଗୁ ଓ ମ୍ୟାଲେରିଆରୁ ରକ୍ଷା ପାଇବା ପାଇଁ ନିଜକୁ ମଶାଙ୍କଠାରୁ ଦୂରେଇ ରଖନ୍ତୁ। ପାଣିଜନିତ ରୋଗରୁ ବଞ୍ଚିବା ପାଇଁ ଫୁଟା ପାଣି ପିଅନ୍ତୁ ଏବଂ ରାସ୍ତା କଡ଼ ଖାଦ୍ୟରୁ ଦୂରେଇ ରୁହନ୍ତୁ।",
			models.LanguageKui:     "ମଶାଙ୍କଠାରୁ ନିଜକୁ ବଞ୍ଚାନ୍ତୁ। ଫୁଟା ପାଣି ପିଅନ୍ତୁ ଏବଂ ବାହାର ଖାଦ୍ୟ ଖାଆନ୍ତୁ ନାହିଁ।",
		},
	},
	seasonWinter: {
		Titles: map[models.Language]string{
			models.LanguageEnglish: "Winter Health Tips",
			models.LanguageHindi:   "सर्दियों के स्वास्थ्य सुझाव",
			models.LanguageOdia:    "ଶୀତଦିନର ସ୍ୱାସ୍ଥ୍ୟ ପରାମର୍ଶ",
			models.LanguageKui:     "ଶୀତ ଦିନର ସ୍ୱାସ୍ଥ୍ୟ କଥା",
		},
		Tips: map[models.Language]string{
			models.LanguageEnglish: "Keep warm to avoid colds and flu. Eat foods rich in Vitamin C like oranges to boost your immunity. Keep your skin moisturized.",
			models.LanguageHindi:   "सर्दी और फ्लू से बचने के लिए गर्म रहें। अपनी रोग प्रतिरोधक क्षमता को बढ़ाने के लिए संतरे जैसे विटामिन सी से भरपूर खाद्य पदार्थ खाएं। अपनी त्वचा को नमीयुक्त रखें।",
			models.LanguageOdia:    "ଥଣ୍ଡା ଏବଂ ଫ୍ଲୁରୁ ରକ୍ଷା ପାଇବା ପାଇଁ ନିଜକୁ ଉଷୁମ ରଖନ୍ତୁ। ଆପଣଙ୍କ ରୋଗ ପ୍ରତିରୋଧକ ଶକ୍ତି ବଢ଼ାଇବା ପାଇଁ କମଳା ପରି ଭିଟାମିନ୍ ସିରେ ଭରପୂର ଖାଦ୍ୟ ଖାଆନ୍ତୁ। ଆପଣଙ୍କ ତ୍ୱଚାକୁ ଆର୍ଦ୍ର ରଖନ୍ତୁ।",
			models.LanguageKui:     "ଥଣ୍ଡାରୁ ବଞ୍ଚିବା ପାଇଁ ଗରମରେ ରୁହନ୍ତୁ। କମଳା ପରି ଭିଟାମିନ୍ ସି ଥିବା ଖାଦ୍ୟ ଖାଆନ୍ତୁ।",
		},
	},
}

// currentSeason maps a point in time to the Indian season.
func currentSeason(t time.Time) season {
	switch t.Month() {
	case time.March, time.April, time.May:
		return seasonSummer
	case time.June, time.July, time.August, time.September:
		return seasonMonsoon
	default:
		return seasonWinter
	}
}

// Tips sends one seasonal preventive-healthcare tip for the user's
// district. It is a one-shot flow with no follow-up state.
type Tips struct {
	now func() time.Time
}

// NewTips creates the preventive-tips handler.
func NewTips() *Tips {
	return &Tips{now: time.Now}
}

// NewTipsAt creates a tips handler with an injected clock.
func NewTipsAt(now func() time.Time) *Tips {
	return &Tips{now: now}
}

// Begin renders the tip for the current season and the user's district.
func (h *Tips) Begin(_ context.Context, profile *models.Profile, session models.Session) models.HandlerResult {
	if profile == nil {
		return models.Failed("preventive tips require a registered profile",
			i18n.Lookup(session.Language, i18n.KeySomethingWentWrong))
	}

	tips := tipsBySeason[currentSeason(h.now())]
	message := fmt.Sprintf("*%s*\n\n*%s for %s*\n- %s",
		i18n.Lookup(session.Language, i18n.KeyPreventiveTipsIntro),
		tips.title(session.Language), profile.District, tips.tip(session.Language))
	return models.Done(message)
}

// Handle is never dispatched to because the flow holds no state; it simply
// replays Begin for safety.
func (h *Tips) Handle(ctx context.Context, profile *models.Profile, session models.Session, _ string) models.HandlerResult {
	return h.Begin(ctx, profile, session)
}
