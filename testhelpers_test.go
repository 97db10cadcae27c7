//go:build integration

package main_test

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/acacia-hms/service-frontdesk/internal/application"
	"github.com/acacia-hms/service-frontdesk/internal/domain/housekeeping"
	frontdeskEvents "github.com/acacia-hms/service-frontdesk/internal/events"
	"github.com/acacia-hms/service-frontdesk/internal/platform/kafka"
	"github.com/acacia-hms/service-frontdesk/internal/repository"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB           *gorm.DB
	KafkaBrokers []string
	Cleanup      func()
}

// frontdeskStack holds wired-up front-desk service components.
type frontdeskStack struct {
	Bookings        *application.BookingService
	Housekeeping    *application.HousekeepingService
	Consumer        *frontdeskEvents.CheckoutEventConsumer
	CleanupProducer func()
}

// setupContainers starts PostgreSQL and Kafka testcontainers and returns a connected GORM DB.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_frontdesk",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=test_frontdesk sslmode=disable", pgHost, pgPort.Port())

	// Poll until GORM can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return false
		}
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, db.AutoMigrate(repository.Models()...))

	// Start Kafka container using confluent-local (supports KRaft natively).
	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")

	kafkaBrokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	createTopics(t, kafkaBrokers,
		frontdeskEvents.TopicBookingEvents,
		frontdeskEvents.TopicHousekeepingEvents,
	)

	cleanup := func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Kafka container: %v", err)
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	}

	return &testInfra{
		DB:           db,
		KafkaBrokers: kafkaBrokers,
		Cleanup:      cleanup,
	}
}

// setupFrontdeskStack wires up the full front-desk service stack.
func setupFrontdeskStack(t *testing.T, db *gorm.DB, brokers []string) *frontdeskStack {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	uow := repository.NewGormUnitOfWork(db)
	producer := kafka.NewProducer(brokers, logger)

	bookingSvc := application.NewBookingService(uow, producer, logger)
	housekeepingSvc := application.NewHousekeepingService(uow, housekeeping.NewFSMValidator(), producer, logger)

	groupID := fmt.Sprintf("test-frontdesk-%s", uuid.New().String()[:8])
	consumer := frontdeskEvents.NewCheckoutEventConsumer(brokers, groupID, housekeepingSvc, logger)

	return &frontdeskStack{
		Bookings:        bookingSvc,
		Housekeeping:    housekeepingSvc,
		Consumer:        consumer,
		CleanupProducer: func() { _ = producer.Close() },
	}
}

// seedRoom inserts a room in the given status.
func seedRoom(t *testing.T, db *gorm.DB, roomID uuid.UUID, number, status string) {
	t.Helper()
	now := time.Now().UTC()
	model := repository.RoomModel{
		ID:        roomID,
		Number:    number,
		Type:      "double",
		Price:     8000,
		Capacity:  2,
		Floor:     1,
		Status:    status,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(&model).Error, "failed to seed room")
}

// seedGuest inserts a guest record.
func seedGuest(t *testing.T, db *gorm.DB, guestID uuid.UUID) {
	t.Helper()
	now := time.Now().UTC()
	model := repository.GuestModel{
		ID:        guestID,
		FirstName: "Amina",
		LastName:  "Otieno",
		Phone:     "+254700000001",
		IDNumber:  fmt.Sprintf("ID-%s", uuid.New().String()[:8]),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(&model).Error, "failed to seed guest")
}

// seedBookingInCheckedInState inserts a checked-in booking for the room.
func seedBookingInCheckedInState(t *testing.T, db *gorm.DB, bookingID, guestID, roomID uuid.UUID) {
	t.Helper()
	now := time.Now().UTC()
	checkedIn := now.Add(-20 * time.Hour)

	model := repository.BookingModel{
		ID:            bookingID,
		BookingNumber: fmt.Sprintf("HB-INT%s", uuid.New().String()[:3]),
		GuestID:       guestID,
		RoomID:        roomID,
		GuestSnapshot: []byte(`{"first_name":"Amina","last_name":"Otieno","phone":"+254700000001"}`),
		Status:        "checked_in",
		CheckIn:       now.Add(-24 * time.Hour),
		CheckOut:      now.Add(24 * time.Hour),
		Nights:        2,
		Adults:        2,
		TotalAmount:   16000,
		PaidAmount:    16000,
		Currency:      "KES",
		PaymentMethod: "mpesa",
		CheckedInAt:   &checkedIn,
		Version:       2,
		CreatedAt:     now.Add(-48 * time.Hour),
		UpdatedAt:     now,
	}
	require.NoError(t, db.Create(&model).Error, "failed to seed booking")
}

// waitForRoomStatus polls the rooms table until the status matches.
func waitForRoomStatus(t *testing.T, db *gorm.DB, roomID uuid.UUID, expectedStatus string, timeout time.Duration) repository.RoomModel {
	t.Helper()
	var result repository.RoomModel
	require.Eventually(t, func() bool {
		var model repository.RoomModel
		if err := db.Where("id = ?", roomID).First(&model).Error; err != nil {
			return false
		}
		if model.Status == expectedStatus {
			result = model
			return true
		}
		return false
	}, timeout, 200*time.Millisecond, "room did not reach status %s", expectedStatus)
	return result
}

// waitForCleaningTask polls the housekeeping_tasks table until a pending
// cleaning task exists for the room.
func waitForCleaningTask(t *testing.T, db *gorm.DB, roomID uuid.UUID, timeout time.Duration) repository.TaskModel {
	t.Helper()
	var result repository.TaskModel
	require.Eventually(t, func() bool {
		var model repository.TaskModel
		err := db.Where("room_id = ? AND type = ? AND status = ?", roomID, "cleaning", "pending").
			First(&model).Error
		if err != nil {
			return false
		}
		result = model
		return true
	}, timeout, 200*time.Millisecond, "cleaning task was not created for room %s", roomID)
	return result
}

// consumeOneEvent reads from a Kafka topic until it finds an event of the expected type.
func consumeOneEvent(t *testing.T, brokers []string, topic, expectedType string, timeout time.Duration) kafka.CloudEvent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	groupID := fmt.Sprintf("test-assert-%s", uuid.New().String()[:8])
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafkago.FirstOffset,
	})
	defer func() { _ = reader.Close() }()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				t.Fatalf("timed out waiting for event type %q on topic %q", expectedType, topic)
			}
			continue
		}
		ce, err := kafka.ParseCloudEvent(msg.Value)
		if err != nil {
			continue
		}
		if ce.Type == expectedType {
			return ce
		}
	}
}

// createTopics pre-creates Kafka topics so producers don't fail with "Unknown Topic".
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err, "failed to dial Kafka for topic creation")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "failed to get Kafka controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, fmt.Sprintf("%d", controller.Port)))
	require.NoError(t, err, "failed to connect to Kafka controller")
	defer controllerConn.Close()

	topicConfigs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		topicConfigs[i] = kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}
	err = controllerConn.CreateTopics(topicConfigs...)
	require.NoError(t, err, "failed to create Kafka topics")

	// Give Kafka a moment to propagate topic metadata.
	time.Sleep(1 * time.Second)
}
