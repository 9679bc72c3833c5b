// Package state assembles the component graph from one settings
// snapshot and rebuilds it when settings change.
package state

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/kettleby/dossier/internal/config"
	"github.com/kettleby/dossier/internal/constants"
	"github.com/kettleby/dossier/internal/creator"
	"github.com/kettleby/dossier/internal/embed"
	"github.com/kettleby/dossier/internal/host"
	"github.com/kettleby/dossier/internal/person"
	"github.com/kettleby/dossier/internal/search"
	"github.com/kettleby/dossier/internal/store"
	"github.com/kettleby/dossier/internal/toc"
)

// State holds every constructed component. Components hold the settings
// snapshot they were built with; Reload replaces the whole graph rather
// than mutating shared configuration in place.
type State struct {
	Settings *config.Settings
	Home     string

	Store    store.Store
	Shell    host.Shell
	Index    *person.Index
	Searcher *search.Searcher
	Embedder *embed.Embedder
	Merger   *toc.Merger
	Creator  *creator.Creator
}

// New loads configuration and builds the component graph. This is the
// initialize entry point.
func New() (*State, error) {
	home, err := GetHomeDir()
	if err != nil {
		return nil, err
	}

	settings, err := LoadSettings(home)
	if err != nil {
		return nil, err
	}

	s := &State{Settings: settings, Home: home}
	s.build()

	return s, nil
}

// FromSettings builds the component graph over an explicit settings
// snapshot, skipping configuration discovery.
func FromSettings(settings *config.Settings, home string) *State {
	s := &State{Settings: settings, Home: home}
	s.build()
	return s
}

// Reload replaces the settings snapshot and reconstructs every
// component with it. This is the settings-changed entry point.
func (s *State) Reload(settings *config.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	s.Settings = settings
	s.build()

	return nil
}

func (s *State) build() {
	st := store.NewOS()
	shell := host.NewTerminal(s.Settings)
	index := person.NewIndex(st, s.Settings)
	embedder := embed.New(st, shell, s.Settings)
	merger := toc.NewMerger(st, s.Settings)

	s.Store = st
	s.Shell = shell
	s.Index = index
	s.Searcher = search.New(index)
	s.Embedder = embedder
	s.Merger = merger
	s.Creator = creator.New(st, s.Settings, index, embedder, merger)
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory. err: %s", err)
	}

	return home, nil
}

func LoadSettings(home string) (*config.Settings, error) {
	viper.AddConfigPath(home + constants.ConfigDir)
	viper.SetConfigName(constants.ConfigFile)
	viper.SetConfigType(constants.ConfigFileType)

	if err := viper.ReadInConfig(); err != nil {
		// A missing file is fine, EnsureConfigExists creates it below.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := config.EnsureConfigExists(home); err != nil {
		return nil, err
	}

	return config.Load(home)
}
