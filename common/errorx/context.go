package errorx

import (
	"fmt"
	"sort"
	"strings"
)

// context holds the details of an error, e.g. the tag or repository involved.
type context map[string]any

func Ctx() context {
	return context{}
}

func (c context) Set(key string, value any) context {
	c[key] = value
	return c
}

// String renders "k1:v1, k2:v2" with keys sorted.
func (c context) String() string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", k, c[k]))
	}
	return strings.Join(parts, ", ")
}
