package analysis

import (
	"github.com/abadojack/whatlanggo"
)

// languageSampleChars bounds the text used for language detection.
const languageSampleChars = 5000

// Language is a detected book language, restricted to the codes the
// narration service supports.
type Language struct {
	Code string // ISO 639-1 code ("en", "uk")
	Name string // English name ("English", "Ukrainian")
}

// supportedLanguages are the narration-supported languages, keyed by ISO
// 639-1 code.
var supportedLanguages = map[string]string{
	"en": "English", "es": "Spanish", "fr": "French", "de": "German",
	"it": "Italian", "pt": "Portuguese", "pl": "Polish", "tr": "Turkish",
	"ru": "Russian", "nl": "Dutch", "cs": "Czech", "ar": "Arabic",
	"zh": "Chinese", "ja": "Japanese", "ko": "Korean", "hi": "Hindi",
	"uk": "Ukrainian", "sv": "Swedish", "da": "Danish", "fi": "Finnish",
	"no": "Norwegian", "ro": "Romanian", "sk": "Slovak", "el": "Greek",
	"hu": "Hungarian", "id": "Indonesian", "ms": "Malay", "th": "Thai",
	"vi": "Vietnamese", "bg": "Bulgarian", "hr": "Croatian", "sr": "Serbian",
	"ca": "Catalan", "lt": "Lithuanian", "lv": "Latvian", "et": "Estonian",
	"sl": "Slovenian", "mt": "Maltese", "ga": "Irish", "cy": "Welsh",
	"is": "Icelandic", "mk": "Macedonian", "sq": "Albanian", "az": "Azerbaijani",
	"kk": "Kazakh", "uz": "Uzbek", "hy": "Armenian", "ka": "Georgian",
	"he": "Hebrew", "fa": "Persian", "ur": "Urdu", "bn": "Bengali",
	"ta": "Tamil", "te": "Telugu", "mr": "Marathi", "gu": "Gujarati",
	"kn": "Kannada", "ml": "Malayalam", "pa": "Punjabi", "ne": "Nepali",
	"si": "Sinhala", "my": "Burmese", "km": "Khmer", "lo": "Lao",
	"am": "Amharic", "sw": "Swahili", "af": "Afrikaans", "zu": "Zulu",
	"xh": "Xhosa", "tl": "Filipino", "jv": "Javanese", "su": "Sundanese",
}

// cyrillicLanguages use Cyrillic script, which affects narration prep.
var cyrillicLanguages = map[string]bool{
	"ru": true, "uk": true, "bg": true, "sr": true, "mk": true,
	"kk": true, "uz": true,
}

// DetectLanguage identifies the book's language from its opening text.
// Unsupported or undetectable languages default to English.
func DetectLanguage(text string) Language {
	sample := truncate(text, languageSampleChars)
	if sample == "" {
		return Language{Code: "en", Name: "English"}
	}

	info := whatlanggo.Detect(sample)
	code := info.Lang.Iso6391()
	name, ok := supportedLanguages[code]
	if !ok {
		return Language{Code: "en", Name: "English"}
	}
	return Language{Code: code, Name: name}
}

// IsCyrillic reports whether the language uses Cyrillic script.
func (l Language) IsCyrillic() bool {
	return cyrillicLanguages[l.Code]
}
