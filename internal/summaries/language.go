package summaries

// Language is a summary target language code as sent by the client.
type Language string

const (
	LangEnglish   Language = "en"
	LangMandarin  Language = "zh"
	LangCantonese Language = "yue"

	// DefaultLanguage is the only language whose summaries are cached.
	DefaultLanguage = LangEnglish
)

// NormalizeLanguage maps a request value to a supported language, defaulting
// to English for empty or unknown codes.
func NormalizeLanguage(raw string) Language {
	switch Language(raw) {
	case LangMandarin:
		return LangMandarin
	case LangCantonese:
		return LangCantonese
	default:
		return LangEnglish
	}
}

// Label returns the display label stored in summary history entries.
func (l Language) Label() string {
	switch l {
	case LangMandarin:
		return "中文"
	case LangCantonese:
		return "粤语"
	default:
		return "English"
	}
}

// Instructions returns the full system prompt for a language. All three
// variants forbid markdown formatting symbols in the output.
func (l Language) Instructions() string {
	var langInstruction string
	switch l {
	case LangMandarin:
		langInstruction = "You MUST provide the summary in Mandarin Chinese (普通话/中文). Use simplified Chinese characters only. Do NOT use English."
	case LangCantonese:
		langInstruction = "You MUST provide the summary in Cantonese (粤语/广东话). Use traditional Chinese characters and Cantonese vocabulary (e.g. 嘅、係、唔、咁、呢度). Do NOT use Mandarin or English."
	default:
		langInstruction = "Provide the summary in English."
	}
	return "You are a helpful assistant that summarizes documents concisely. " +
		langInstruction +
		" Use plain text only—no markdown, no ** or other formatting symbols."
}
