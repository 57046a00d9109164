package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jroedel/hatemp/business/bustempgopher"
	"github.com/jroedel/hatemp/business/bustemplog"
	"github.com/jroedel/hatemp/foundation/clientsqlite"
	"github.com/jroedel/hatemp/foundation/homeassistantapi"
)

var (
	hubBaseUrl       string
	hubToken         string
	entityId         string
	temperatureField string
	dbPath           string
	listEntities     bool
)

func init() {
	flag.StringVar(&hubBaseUrl, "base-url", "", "The root url of the Home Assistant hub, e.g. http://homeassistant.local:8123")
	flag.StringVar(&hubToken, "token", "", "A long-lived access token for the hub") //no default, falls back to HA_TOKEN
	flag.StringVar(&entityId, "entity-id", "", "The entity to read, e.g. sensor.outdoor")
	flag.StringVar(&temperatureField, "temperature-field", "", "Read this attribute instead of the entity state")
	flag.StringVar(&dbPath, "db-path", "", "If set, append the reading to this sqlite database")
	flag.BoolVar(&listEntities, "list", false, "List the entities known to the hub and exit")
}

func main() {
	flag.Parse()
	if err := validateParams(); err != nil {
		log.Fatal(err)
	}
	logger := log.New(os.Stdout, "[hatempsrc] ", 0)
	ctx := context.Background()

	if listEntities {
		if err := printHubEntities(ctx); err != nil {
			log.Fatal(err)
		}
		return
	}

	cfg := bustempgopher.Config{
		BaseUrl:          hubBaseUrl,
		Token:            hubToken,
		EntityId:         entityId,
		TemperatureField: temperatureField,
	}
	temperature, err := bustempgopher.GetTemperature(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%g\n", temperature)

	if dbPath == "" {
		return
	}
	cln, err := clientsqlite.New(dbPath)
	if err != nil {
		log.Fatalf("opening sqlite db: %s", err)
	}
	defer cln.Close()
	journal := bustemplog.New(cln)
	err = journal.Create(bustemplog.Reading{
		EntityId:    entityId,
		Timestamp:   time.Now(),
		Temperature: temperature,
	})
	if err != nil {
		log.Fatalf("persisting reading to sqlite db: %s", err)
	}
	logger.Printf("Appended reading for %s to %s", entityId, dbPath)
}

func printHubEntities(ctx context.Context) error {
	cln, err := homeassistantapi.New(hubBaseUrl, hubToken)
	if err != nil {
		return err
	}
	states, err := cln.GetStates(ctx)
	if err != nil {
		return err
	}
	for _, state := range states {
		value := "(no state)"
		if state.State != nil {
			value = *state.State
		}
		fmt.Printf("%s\t%s\n", state.EntityId, value)
	}
	return nil
}

// validate user input
func validateParams() error {
	if hubToken == "" {
		hubToken = os.Getenv("HA_TOKEN")
		if hubToken == "" {
			return fmt.Errorf("please specify the hub token `hatempsrc -token <token>` or set HA_TOKEN")
		}
	}
	if hubBaseUrl == "" {
		return fmt.Errorf("please specify the hub base url `hatempsrc -base-url http://homeassistant.local:8123`")
	}
	if !listEntities && entityId == "" {
		return fmt.Errorf("please specify the entity to read `hatempsrc -entity-id sensor.outdoor`")
	}
	return nil
}
