// Package language defines the fixed set of language codes the relay accepts.
//
// The relay translates between ten Indian languages. Every code that enters
// the pipeline must be a member of this set; unknown codes are rejected
// before any provider call is made.
package language

import "sort"

// names maps supported BCP-47 codes to their native-script display names.
var names = map[string]string{
	"hi-IN": "हिन्दी",
	"kn-IN": "ಕನ್ನಡ",
	"ta-IN": "தமிழ்",
	"te-IN": "తెలుగు",
	"ml-IN": "മലയാളം",
	"bn-IN": "বাংলা",
	"mr-IN": "मराठी",
	"gu-IN": "ગુજરાતી",
	"od-IN": "ଓଡ଼ିଆ",
	"pa-IN": "ਪੰਜਾਬੀ",
}

// Supported reports whether code is one of the relay's languages.
func Supported(code string) bool {
	_, ok := names[code]
	return ok
}

// Name returns the native-script display name for a supported code.
func Name(code string) (string, bool) {
	name, ok := names[code]
	return name, ok
}

// Codes returns the supported codes in sorted order.
func Codes() []string {
	codes := make([]string, 0, len(names))
	for code := range names {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
