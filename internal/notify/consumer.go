package notify

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/doyensec/safeurl"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/debateclub/debate-club-api/internal/metrics"
)

// StartConsumer connects to RabbitMQ, declares the notification.send
// queue and delivers each event to its endpoints. It runs a reconnect
// loop with exponential backoff and keeps going across broker restarts;
// processing errors are logged, the offending message is rejected without
// requeue, and the server continues operating.
//
// Endpoints are client-supplied URLs, so delivery goes through an
// SSRF-guarded HTTP client that refuses private, loopback and
// link-local destinations.
func StartConsumer(amqpURL string, collector *metrics.Collector) error {
	if amqpURL == "" {
		return fmt.Errorf("notifications disabled: no broker URL configured")
	}
	client := newSafeClient()

	backoff := time.Second
	for {
		conn, err := amqp.Dial(amqpURL)
		if err != nil {
			log.Printf("notify-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn, client, collector); err != nil {
			log.Printf("notify-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
		}
	}
}

func newSafeClient() *http.Client {
	config := safeurl.GetConfigBuilder().
		SetTimeout(10 * time.Second).
		SetAllowedSchemes("http", "https").
		SetAllowedPorts(80, 443).
		Build()
	return safeurl.Client(config).Client
}

func consumeLoop(conn *amqp.Connection, client *http.Client, collector *metrics.Collector) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(10, 0, false); err != nil {
		log.Printf("notify-consumer: set QoS failed: %v", err)
	}
	if _, err := ch.QueueDeclare(notificationQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(notificationQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleMessage(d.Body, client, collector); err != nil {
			log.Printf("notify-consumer: handle message failed: %v", err)
			_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func handleMessage(body []byte, client *http.Client, collector *metrics.Collector) error {
	var ev NotificationEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	payload, err := json.Marshal(map[string]string{"title": ev.Title, "body": ev.Body})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	delivered, failed := 0, 0
	for _, ep := range ev.Endpoints {
		if err := deliver(client, ep.URL, payload); err != nil {
			failed++
			collector.RecordDelivery("fail")
			log.Printf("notify-consumer: delivery to %s failed: %v", ep.URL, err)
			continue
		}
		delivered++
		collector.RecordDelivery("ok")
	}
	return appendLog(ev, delivered, failed)
}

func deliver(client *http.Client, endpoint string, payload []byte) error {
	resp, err := client.Post(endpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("endpoint returned %d", resp.StatusCode)
	}
	return nil
}

func appendLog(ev NotificationEvent, delivered, failed int) error {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	fpath := filepath.Join("logs", "notifications.log")
	f, err := os.OpenFile(fpath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	line := fmt.Sprintf("[%s] Notification sent | id=%s | title=%q | sent_by=%s | delivered=%d | failed=%d\n",
		ev.CreatedAt, ev.ID, ev.Title, ev.SentBy, delivered, failed)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
