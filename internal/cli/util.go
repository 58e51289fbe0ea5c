package cli

import (
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/joseph-ayodele/docsheet/internal/common"
)

func joinDir(dir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}

// defaultsOnly is a viper with defaults and no env, for config init.
func defaultsOnly() *viper.Viper {
	v := viper.New()
	common.SetDefaults(v)
	return v
}

func validateMode(mode string) error {
	return common.NewValidator().Field("mode", mode, common.OneOf("standard", "weighted")).AsConfigError()
}
