// Copyright (c) 2020-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

// Package langcheck guesses the language of source content before it is
// pushed for translation.
package langcheck

import (
	"regexp"
	"strings"
	"sync"
	"unicode"

	lingua "github.com/pemistahl/lingua-go"
)

// minLetters is the smallest sample worth detecting.
const minLetters = 6

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector

	tagPattern = regexp.MustCompile(`<[^>]*>`)
)

func getDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			Build()
	})
	return detector
}

// Detect returns the ISO 639-1 code of the language of text, or "" when
// the sample is too short or ambiguous. HTML tags are ignored.
func Detect(text string) string {
	sample := strings.TrimSpace(tagPattern.ReplaceAllString(text, " "))

	letters := 0
	for _, r := range sample {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	if letters < minLetters {
		return ""
	}

	language, exists := getDetector().DetectLanguageOf(sample)
	if !exists {
		return ""
	}

	code := strings.ToLower(language.IsoCode639_1().String())
	if len(code) != 2 {
		return ""
	}
	return code
}

// Matches reports whether text looks like it is written in the language
// with the given locale code, such as "en-us". It also returns the
// detected ISO 639-1 code. Undetectable text always matches.
func Matches(text, localeCode string) (bool, string) {
	detected := Detect(text)
	if detected == "" {
		return true, ""
	}

	primary := strings.ToLower(localeCode)
	if i := strings.IndexAny(primary, "-_"); i >= 0 {
		primary = primary[:i]
	}

	return primary == "" || primary == detected, detected
}
