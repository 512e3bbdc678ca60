package i18n

import (
	"github.com/example/checkinbot/pkg/models"
)

// Action is the semantic command behind a pressed menu button, independent of
// the language the button was rendered in. Raw text is resolved to an Action
// exactly once; handlers only ever see the Action.
type Action int

const (
	ActionUnknown Action = iota
	ActionStartWork
	ActionStopWork
	ActionStartEat
	ActionStartToilet
	ActionStartSmoke
	ActionBackToDesk
	ActionSummary
)

// Languages is the fixed set of supported locale tags
var Languages = []string{"zh", "en", "km"}

// DefaultLanguage is used for new users until they switch
const DefaultLanguage = "zh"

// actionTexts maps each action to its button label per language, in the same
// order as Languages. Adding a language means adding one column here; the
// ledger and handlers are untouched.
var actionTexts = map[Action][]string{
	ActionStartWork:   {"上班", "Work", "ចូលការងារ"},
	ActionStopWork:    {"下班", "Off Work", "ចេញការងារ"},
	ActionStartEat:    {"吃饭", "Eat", "បាយ"},
	ActionStartToilet: {"上厕所", "Toilet", "បន្ទប់ទឹក"},
	ActionStartSmoke:  {"抽烟", "Smoke", "ជក់បារី"},
	ActionBackToDesk:  {"回座", "Back", "ត្រឡប់តុ"},
	ActionSummary:     {"📊 今日统计", "📊 Daily Summary", "📊 សរុបប្រចាំថ្ងៃ"},
}

// byText is the inverse of actionTexts across every language, built once at
// init. Buttons resolve regardless of the user's current language setting,
// matching how users actually switch keyboards mid-day.
var byText = func() map[string]Action {
	m := make(map[string]Action)
	for action, texts := range actionTexts {
		for _, text := range texts {
			m[text] = action
		}
	}
	return m
}()

// Lookup resolves raw button text to its semantic action
func Lookup(text string) (Action, bool) {
	action, ok := byText[text]
	return action, ok
}

// StartKind maps a start action to the activity kind it opens
func (a Action) StartKind() (models.ActivityKind, bool) {
	switch a {
	case ActionStartWork:
		return models.Work, true
	case ActionStartEat:
		return models.Eat, true
	case ActionStartToilet:
		return models.Toilet, true
	case ActionStartSmoke:
		return models.Smoke, true
	}
	return "", false
}

func langIndex(lang string) int {
	for i, l := range Languages {
		if l == lang {
			return i
		}
	}
	return 0
}

// ButtonText returns the action's button label in the given language
func ButtonText(action Action, lang string) string {
	return actionTexts[action][langIndex(lang)]
}

// MenuRows returns the reply-keyboard layout for a language
func MenuRows(lang string) [][]string {
	i := langIndex(lang)
	rows := [][]Action{
		{ActionStartWork, ActionStopWork},
		{ActionStartEat, ActionStartToilet, ActionStartSmoke},
		{ActionBackToDesk},
		{ActionSummary},
	}
	out := make([][]string, len(rows))
	for r, row := range rows {
		out[r] = make([]string, len(row))
		for c, action := range row {
			out[r][c] = actionTexts[action][i]
		}
	}
	return out
}

var greetings = map[string]string{
	"zh": "✅ 打卡机器人已启动！请选择操作:",
	"en": "✅ Check-in bot started! Please choose an action:",
	"km": "✅ បូតបានចាប់ផ្តើម! សូមជ្រើសរើសសកម្មភាព:",
}

var backHints = map[string]string{
	"zh": "提示：本次活动时间已结算",
	"en": "Hint: This activity's time has been settled.",
	"km": "សេចក្តីជូនដំណឹង៖ ពេលវេលានៃសកម្មភាពនេះត្រូវបានបញ្ចប់",
}

var langConfirmations = map[string]string{
	"zh": "✅ 已切换到中文",
	"en": "✅ Switched to English",
	"km": "✅ បានប្ដូរទៅជាភាសាខ្មែរ",
}

// Greeting is the /start welcome line
func Greeting(lang string) string {
	return greetings[lang]
}

// BackHint is the settle notice appended to back-to-desk replies
func BackHint(lang string) string {
	return backHints[lang]
}

// LangConfirmation confirms a language switch, in the target language
func LangConfirmation(lang string) string {
	return langConfirmations[lang]
}
