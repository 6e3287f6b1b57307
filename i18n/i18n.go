package i18n

import (
	"os"
	"strings"
	"sync"

	"github.com/jeandeaual/go-locale"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

// EnvLang forces the UI language when set.
const EnvLang = "RINGTIMER_LANG"

var (
	mu   sync.RWMutex
	lang = "en"

	supported = []language.Tag{
		language.English,
		language.Portuguese,
		language.Spanish,
		language.Russian,
	}
	matcher = language.NewMatcher(supported)
)

var translations = map[string]map[string]string{
	"%s hours, %s minutes, %s seconds remaining": {
		"pt": "%s horas, %s minutos, %s segundos restantes",
		"es": "%s horas, %s minutos, %s segundos restantes",
		"ru": "осталось %s ч, %s мин, %s с",
	},
	"%s hours": {
		"pt": "%s horas",
		"es": "%s horas",
		"ru": "%s ч",
	},
	"%s minutes": {
		"pt": "%s minutos",
		"es": "%s minutos",
		"ru": "%s мин",
	},
	"%s seconds": {
		"pt": "%s segundos",
		"es": "%s segundos",
		"ru": "%s с",
	},
	"Timer": {
		"pt": "Temporizador",
		"es": "Temporizador",
		"ru": "Таймер",
	},
	"Paused": {
		"pt": "Pausado",
		"es": "En pausa",
		"ru": "Пауза",
	},
	"Time's up": {
		"pt": "Tempo esgotado",
		"es": "Se acabó el tiempo",
		"ru": "Время вышло",
	},
	"[space] pause/resume  [r] reset  [q] quit": {
		"pt": "[espaço] pausar/continuar  [r] reiniciar  [q] sair",
		"es": "[espacio] pausar/reanudar  [r] reiniciar  [q] salir",
		"ru": "[пробел] пауза/продолжить  [r] сброс  [q] выход",
	},
}

// Init picks the UI language. forced (usually from config) wins, then the
// RINGTIMER_LANG environment variable, then the system locale.
func Init(forced string) {
	if forced = strings.TrimSpace(forced); forced != "" {
		logrus.Infof("Language forced to: '%s'", forced)
		SetLang(forced)
		return
	}

	if forcedLang := strings.TrimSpace(os.Getenv(EnvLang)); forcedLang != "" {
		logrus.Infof("%s is set to: '%s'", EnvLang, forcedLang)
		SetLang(forcedLang)
		return
	}

	logrus.Debugf("%s is not set, detecting from system locale.", EnvLang)
	userLocales, err := locale.GetLocales()
	if err != nil || len(userLocales) == 0 {
		logrus.Info("No user locale detected, defaulting to english")
		SetLang("en")
		return
	}

	logrus.Debugf("Detected user locales: %v", userLocales)
	SetLang(Match(userLocales...))
	logrus.Infof("Language set to: %s", GetLang())
}

// Match returns the supported base language closest to the given locales.
func Match(locales ...string) string {
	tag, _ := language.MatchStrings(matcher, locales...)
	base, _ := tag.Base()
	return base.String()
}

// SetLang sets the active language; unsupported languages fall back to
// the closest match.
func SetLang(l string) {
	m := Match(l)
	mu.Lock()
	lang = m
	mu.Unlock()
}

// T translates key into the active language.
func T(key string) string {
	mu.RLock()
	l := lang
	mu.RUnlock()
	if translated, ok := translations[key][l]; ok {
		return translated
	}
	return key
}

// GetLang returns the active language.
func GetLang() string {
	mu.RLock()
	defer mu.RUnlock()
	return lang
}
