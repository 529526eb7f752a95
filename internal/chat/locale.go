package chat

import "golang.org/x/text/language"

var supported = []language.Tag{language.Russian, language.Kazakh, language.English}

var matcher = language.NewMatcher(supported)

var fallbackMessages = []string{
	"Извините, сейчас я не могу ответить на этот вопрос. Пожалуйста, позвоните нам или оставьте заявку на сайте, и менеджер свяжется с вами.",
	"Кешіріңіз, қазір бұл сұраққа жауап бере алмаймын. Бізге қоңырау шалыңыз немесе сайтта өтінім қалдырыңыз, менеджер сізбен хабарласады.",
	"Sorry, I can't answer that right now. Please call us or leave a request on the website and a manager will contact you.",
}

// ResolveLanguage picks ru, kk or en from an Accept-Language header,
// defaulting to Russian.
func ResolveLanguage(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return language.Russian
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return language.Russian
	}
	return supported[index]
}

// FallbackMessage is the assistant turn shown when the model gives no usable answer.
func FallbackMessage(lang language.Tag) string {
	_, index, _ := matcher.Match(lang)
	return fallbackMessages[index]
}
