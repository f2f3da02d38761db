package queue

import (
	"fmt"

	"github.com/transparencia-lab/politigraph/backend/internal/util"
	"github.com/transparencia-lab/politigraph/backend/pkg/logger"

	"github.com/rabbitmq/amqp091-go"
)

// RefreshQueue carries messages from the ingestion pipeline signalling that
// the store content changed and caches must be flushed.
const RefreshQueue = "refresh_queue"

func Init() *amqp091.Connection {
	user := util.GetEnv("RABBITMQ_USER")
	pass := util.GetEnv("RABBITMQ_PASSWORD")
	host := util.GetEnv("RABBITMQ_HOST")
	port := util.GetEnv("RABBITMQ_PORT")

	connURL := fmt.Sprintf(
		"amqp://%s:%s@%s:%s/",
		user,
		pass,
		host,
		port,
	)

	conn, err := amqp091.Dial(connURL)
	if err != nil {
		logger.Fatal("Failed to connect to RabbitMQ", "err", err)
	}

	return conn
}

func SetupQueues(ch *amqp091.Channel) error {
	_, err := ch.QueueDeclare(
		RefreshQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("queue declare %s: %w", RefreshQueue, err)
	}
	return nil
}
