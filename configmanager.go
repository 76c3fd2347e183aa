package rollout

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/matryer/try"
	"github.com/rolloutgate/go-rollout-sdk/evaluation"
	"github.com/rolloutgate/go-rollout-sdk/util"
)

const fetchAttempts = 3

// ConfigManager loads rollout documents from disk or HTTP and gates them
// through the full acceptance pipeline: decode, struct validation, shape
// validation, referential integrity. Acceptance is fail-closed; a
// document that trips any step is rejected whole.
//
// The validator instance is owned by the manager rather than held as
// package state, so callers can run independent managers side by side.
type ConfigManager struct {
	httpClient *http.Client
	validate   *validator.Validate
	configETag string
	current    *evaluation.RolloutConfig
}

func NewConfigManager(options *Options) *ConfigManager {
	if options == nil {
		options = &Options{}
	}
	options.CheckDefaults()
	return &ConfigManager{
		httpClient: &http.Client{Timeout: options.RequestTimeout},
		validate:   validator.New(),
	}
}

// LoadFile reads a rollout document from disk. Files ending in .yaml or
// .yml decode as YAML; everything else decodes as JSON.
func (m *ConfigManager) LoadFile(path string) (*evaluation.RolloutConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file %q: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		config, err := evaluation.ParseConfigYAML(raw)
		if err != nil {
			return nil, err
		}
		return m.accept(config)
	default:
		config, err := evaluation.ParseConfig(raw)
		if err != nil {
			return nil, err
		}
		return m.accept(config)
	}
}

// LoadURL fetches a JSON rollout document over HTTP(S), retrying server
// errors a bounded number of times. A 304 against the held ETag returns
// the previously accepted configuration.
func (m *ConfigManager) LoadURL(url string) (*evaluation.RolloutConfig, error) {
	var raw []byte
	var notModified bool

	err := try.Do(func(attempt int) (bool, error) {
		body, status, fetchErr := m.fetch(url)
		if fetchErr != nil {
			return attempt < fetchAttempts, fetchErr
		}
		switch {
		case status == http.StatusOK:
			raw = body
			return false, nil
		case status == http.StatusNotModified:
			notModified = true
			return false, nil
		case status >= 500:
			util.Warnf("Retrying config fetch. Status: %d", status)
			return attempt < fetchAttempts, fmt.Errorf("config fetch failed with status %d", status)
		default:
			return false, fmt.Errorf("unexpected response code %d fetching config from %s", status, url)
		}
	})
	if err != nil {
		return nil, err
	}

	if notModified {
		if m.current == nil {
			return nil, fmt.Errorf("config not modified but no previously accepted config is held")
		}
		return m.current, nil
	}

	config, err := evaluation.ParseConfig(raw)
	if err != nil {
		return nil, err
	}
	return m.accept(config)
}

func (m *ConfigManager) fetch(url string) (body []byte, status int, err error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	if m.configETag != "" {
		req.Header.Set("If-None-Match", m.configETag)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	if resp.StatusCode == http.StatusOK {
		m.configETag = resp.Header.Get("Etag")
	}
	return body, resp.StatusCode, nil
}

// Accept runs an already parsed configuration through validation and the
// integrity check, holding it as current on success.
func (m *ConfigManager) Accept(config *evaluation.RolloutConfig) (*evaluation.RolloutConfig, error) {
	return m.accept(config)
}

func (m *ConfigManager) accept(config *evaluation.RolloutConfig) (*evaluation.RolloutConfig, error) {
	if err := m.validate.Struct(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	if err := evaluation.CheckStageReferences(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	m.current = config
	util.Infof("Config accepted. %d stages, %d features. ETag: %q", len(config.Stages), len(config.Features), m.configETag)
	return config, nil
}
