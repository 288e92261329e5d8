package routes

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gestion_comercial/internal/adapter/persistence/memory"
	"gestion_comercial/internal/adapter/persistence/repository"
	"gestion_comercial/internal/domain/entities"
	"gestion_comercial/internal/infrastructure/auth"
	"gestion_comercial/internal/infrastructure/database"
	"gestion_comercial/internal/infrastructure/notification"
	"gestion_comercial/internal/usecase"
)

const (
	defaultTimezone   = "America/Bogota"
	storeDriverMemory = "memory"
	storeDriverDynamo = "dynamodb"
)

type lifecycle struct {
	useCase  *usecase.QuotationLifecycleUseCase
	location *time.Location
}

// buildLifecycle wires the lifecycle engine from the environment.
//
// STORE_DRIVER selects the document store (dynamodb by default, memory for
// local runs). The notification gateway is optional at startup; without it
// every send fails with a notification error.
func buildLifecycle() lifecycle {
	loc := loadLocation(getenvDefault("APP_TIMEZONE", defaultTimezone))

	deps := usecase.LifecycleDependencies{
		Permissions: auth.NewClaimsPermissionOracle(),
		Location:    loc,
	}
	if v, err := strconv.Atoi(os.Getenv("QUOTATION_VALIDITY_DAYS")); err == nil && v > 0 {
		deps.DefaultValidityDays = v
	}

	switch driver := strings.ToLower(getenvDefault("STORE_DRIVER", storeDriverDynamo)); driver {
	case storeDriverMemory:
		store := memory.NewStore()
		deps.Quotations = store.Quotations()
		deps.Orders = store.Orders()
		deps.Remissions = store.Remissions()
		deps.Transactor = store
		deps.Sequences = memory.NewSequenceGenerator(sequenceStartsFromEnv())
		log.Printf("[bootstrap] document store driver=memory")
	default:
		if driver != storeDriverDynamo {
			log.Printf("[bootstrap] unknown STORE_DRIVER=%q, using dynamodb", driver)
		}
		wireDynamo(&deps)
	}

	smtpSettings := notification.SMTPSettingsFromEnv()
	gateway, err := notification.NewSMTPGateway(smtpSettings)
	if err != nil {
		log.Printf("Notification gateway not configured: %v", err)
		deps.Notifier = (*notification.SMTPGateway)(nil)
	} else {
		deps.Notifier = gateway
	}

	return lifecycle{useCase: usecase.NewQuotationLifecycleUseCase(deps), location: loc}
}

func wireDynamo(deps *usecase.LifecycleDependencies) {
	ctx := context.Background()
	ddb, settings := database.ConnectDynamoDB(ctx)
	tables := repository.TablesFromEnv()

	if settings.AutoCreateTables {
		specs := []database.TableSpec{
			{Name: tables.Quotations, PartitionKey: "id"},
			{Name: tables.Orders, PartitionKey: "id"},
			{Name: tables.Remissions, PartitionKey: "id"},
			{Name: tables.DocumentCodes, PartitionKey: "code"},
			{Name: tables.Sequences, PartitionKey: "kind"},
		}
		if err := database.EnsureTables(ctx, ddb, specs); err != nil {
			log.Fatalf("failed to bootstrap dynamodb tables: %v", err)
		}
	}

	sequences := repository.NewSequenceDynamoGenerator(ddb, tables)
	for kind, last := range sequenceStartsFromEnv() {
		if err := sequences.Seed(ctx, kind, last); err != nil {
			log.Printf("[bootstrap] sequence seed failed kind=%s err=%v", kind, err)
		}
	}

	deps.Quotations = repository.NewQuotationDynamoRepository(ddb, tables)
	deps.Orders = repository.NewOrderDynamoRepository(ddb, tables)
	deps.Remissions = repository.NewRemissionDynamoRepository(ddb, tables)
	deps.Transactor = repository.NewConversionDynamoTransactor(ddb, tables)
	deps.Sequences = sequences
	log.Printf("[bootstrap] document store driver=dynamodb")
}

// sequenceStartsFromEnv reads SEQUENCE_START_QUOTATION, SEQUENCE_START_ORDER
// and SEQUENCE_START_REMISSION: the last code number already issued per kind,
// for stores migrated from an earlier system.
func sequenceStartsFromEnv() map[entities.DocumentKind]int64 {
	out := map[entities.DocumentKind]int64{}
	for _, kind := range []entities.DocumentKind{entities.DocumentKindQuotation, entities.DocumentKindOrder, entities.DocumentKindRemission} {
		raw := os.Getenv("SEQUENCE_START_" + strings.ToUpper(string(kind)))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 {
			log.Printf("[bootstrap] ignoring invalid SEQUENCE_START_%s=%q", strings.ToUpper(string(kind)), raw)
			continue
		}
		out[kind] = v
	}
	return out
}

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("[bootstrap] invalid APP_TIMEZONE=%q, using UTC err=%v", name, err)
		return time.UTC
	}
	return loc
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
