package transcriber

// languageNames maps ISO 639-1 codes to the full names the ASR models
// accept as a language hint.
var languageNames = map[string]string{
	"en": "English",
	"zh": "Chinese",
	"ja": "Japanese",
	"ko": "Korean",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"ru": "Russian",
	"ar": "Arabic",
	"hi": "Hindi",
	"vi": "Vietnamese",
	"th": "Thai",
	"id": "Indonesian",
	"ms": "Malay",
	"nl": "Dutch",
	"pl": "Polish",
	"tr": "Turkish",
	"uk": "Ukrainian",
	"cs": "Czech",
	"sv": "Swedish",
	"da": "Danish",
	"fi": "Finnish",
	"no": "Norwegian",
	"he": "Hebrew",
	"el": "Greek",
	"ro": "Romanian",
	"hu": "Hungarian",
	"sk": "Slovak",
	"bg": "Bulgarian",
	"hr": "Croatian",
	"lt": "Lithuanian",
	"lv": "Latvian",
	"et": "Estonian",
	"sl": "Slovenian",
	"ca": "Catalan",
}

// LanguageName resolves a 2-letter code to its full name. Unknown or empty
// codes return "", which backends treat as auto-detect.
func LanguageName(code string) string {
	return languageNames[code]
}
