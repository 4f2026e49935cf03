package service

import (
	"github.com/bytedance/sonic"
	"gorm.io/datatypes"
)

// jsonb renders a sub-map for the merge statements. Marshalling a
// map[string]any of strings/numbers cannot fail; the empty-object fallback
// keeps the jsonb || well-typed regardless.
func jsonb(m map[string]any) datatypes.JSON {
	raw, err := sonic.Marshal(m)
	if err != nil {
		return datatypes.JSON([]byte("{}"))
	}
	return datatypes.JSON(raw)
}
