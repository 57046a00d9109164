// Package bustempgopher retrieves a single temperature reading from the hub:
// one state fetch, one deterministic extraction rule, one float or a
// classified error.
package bustempgopher

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/jroedel/hatemp"
	"github.com/jroedel/hatemp/foundation/homeassistantapi"
)

// Config names the hub and the entity to read. TemperatureField selects a key
// inside the entity's attribute set; when blank the entity state itself is the
// candidate. Exactly one of the two sources is read per call, never both.
type Config struct {
	BaseUrl  string
	Token    string
	EntityId string
	//TemperatureField is optional; blank means direct-state mode
	TemperatureField string
}

func (cfg Config) HasError() error {
	if cfg.BaseUrl == "" {
		return hatemp.ErrClientConstruction.With("we received a blank BaseUrl")
	}
	if cfg.Token == "" {
		return hatemp.ErrClientConstruction.With("we received a blank Token")
	}
	if cfg.EntityId == "" {
		return hatemp.ErrClientConstruction.With("we received a blank EntityId")
	}
	return nil
}

// GetTemperature builds a fresh client from cfg, fetches the entity's state
// and parses the candidate string as a temperature. Any step failing aborts
// the whole call; there is no fallback source and no default value. cfg is
// never mutated.
func GetTemperature(ctx context.Context, cfg Config) (float32, error) {
	if err := cfg.HasError(); err != nil {
		return 0, err
	}

	cln, err := homeassistantapi.New(cfg.BaseUrl, cfg.Token)
	if err != nil {
		return 0, fmt.Errorf("failed to create client: %w", err)
	}

	state, err := cln.GetState(ctx, cfg.EntityId)
	if err != nil {
		return 0, fmt.Errorf("failed to get state for %s: %w", cfg.EntityId, err)
	}

	var candidate string
	if cfg.TemperatureField == "" {
		if state.State == nil {
			return 0, hatemp.ErrMissingState.Withf("no state value for %s", cfg.EntityId)
		}
		candidate = *state.State
	} else {
		if state.Attributes == nil {
			return 0, hatemp.ErrMissingAttributes.Withf("no attributes for %s", cfg.EntityId)
		}
		value, ok := state.Attributes[cfg.TemperatureField]
		if !ok {
			return 0, hatemp.ErrMissingField.Withf("no field %s in attributes", cfg.TemperatureField)
		}
		str, ok := value.(string)
		if !ok {
			return 0, hatemp.ErrNonStringField.Withf("field %s is not a string", cfg.TemperatureField)
		}
		candidate = str
	}

	temperature, err := strconv.ParseFloat(candidate, 32)
	if err != nil {
		return 0, hatemp.ErrParse.Withf("cannot parse temperature '%s': %s", candidate, err)
	}
	if math.IsInf(temperature, 0) || math.IsNaN(temperature) {
		return 0, hatemp.ErrParse.Withf("cannot parse temperature '%s': not a finite number", candidate)
	}
	return float32(temperature), nil
}
