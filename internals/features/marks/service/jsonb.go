package service

import (
	"github.com/bytedance/sonic"
	"gorm.io/datatypes"
)

func jsonb(m map[string]any) datatypes.JSON {
	raw, err := sonic.Marshal(m)
	if err != nil {
		return datatypes.JSON([]byte("{}"))
	}
	return datatypes.JSON(raw)
}
