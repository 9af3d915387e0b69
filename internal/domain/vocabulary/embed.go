package vocabulary

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed data/skills.json
var skillsJSON []byte

//go:embed data/domains.json
var domainsJSON []byte

// Kind names a built-in vocabulary.
type Kind string

const (
	KindSkills  Kind = "skills"
	KindDomains Kind = "domains"
)

var builtin = map[Kind]Vocabulary{} //nolint:gochecknoglobals // loaded once at startup

func init() { //nolint:gochecknoinits // embedded data is static; a load failure is a build defect
	builtin[KindSkills] = mustLoad(skillsJSON, "skills")
	builtin[KindDomains] = mustLoad(domainsJSON, "domains")
}

// Skills returns the built-in skill vocabulary.
func Skills() Vocabulary { return builtin[KindSkills] }

// Domains returns the built-in domain vocabulary.
func Domains() Vocabulary { return builtin[KindDomains] }

// ByKind resolves a built-in vocabulary by name. The second return value is
// false for unknown kinds.
func ByKind(kind Kind) (Vocabulary, bool) {
	v, ok := builtin[kind]
	return v, ok
}

func mustLoad(raw []byte, key string) Vocabulary {
	var doc map[string][]string
	if err := json.Unmarshal(raw, &doc); err != nil {
		panic(fmt.Sprintf("vocabulary: bad embedded %s data: %v", key, err))
	}
	return New(doc[key])
}
