// Command staticlint runs the vet passes, errcheck, the os.Exit check
// and the staticcheck analyzers named in config.json over the given packages.
//
// config.json is looked up next to the executable:
//
//	{"staticcheck": ["SA1000", "S1000", "ST1000", "QF1001"]}
//
// A missing file leaves only the analyzers that always run.
package main

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/tools/go/analysis/multichecker"
)

// Config is the name of the configuration file.
const Config = `config.json`

// ConfigData describes configuration file structure.
type ConfigData struct {
	Staticcheck []string `json:"staticcheck"`
}

func main() {
	cfg, err := readConfig()
	if err != nil {
		log.Fatal(err)
	}

	multichecker.Main(append(baseChecks(), selected(cfg)...)...)
}

// readConfig decodes the configuration file placed next to the executable.
func readConfig() (ConfigData, error) {
	var cfg ConfigData

	// Get the path name for the executable that started the current process.
	appfile, err := os.Executable()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(filepath.Join(filepath.Dir(appfile), Config))
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	err = json.Unmarshal(data, &cfg)
	return cfg, err
}
