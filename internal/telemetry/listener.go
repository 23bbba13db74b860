package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	domainIncident "plantops/internal/domain/incident"
	domainMachine "plantops/internal/domain/machine"
	"plantops/internal/logger"
	pkgmqtt "plantops/pkg/mqtt"
)

// StatusMessage is the payload machines publish on the status topic.
// Alarm is optional; when present an incident is opened automatically.
type StatusMessage struct {
	MachineCode string     `json:"machine_code"`
	Status      string     `json:"status"`
	Alarm       *string    `json:"alarm,omitempty"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
}

// Config describes the MQTT connection and topic for the listener.
type Config struct {
	ClientConfig *pkgmqtt.Config
	StatusTopic  string
	QoS          byte
}

// Listener subscribes to machine status telemetry and applies it to
// storage. Status changes update the machine row; alarms open incidents
// with no reporter.
type Listener struct {
	cfg          *Config
	client       *pkgmqtt.Client
	machineRepo  domainMachine.Repository
	incidentRepo domainIncident.Repository

	mu      sync.Mutex
	started bool
}

// NewListener builds a telemetry listener.
func NewListener(
	cfg *Config,
	machineRepo domainMachine.Repository,
	incidentRepo domainIncident.Repository,
) (*Listener, error) {
	if cfg == nil || cfg.ClientConfig == nil {
		return nil, errors.New("telemetry config is not configured")
	}
	if cfg.StatusTopic == "" {
		return nil, errors.New("status topic is required")
	}

	client := pkgmqtt.NewClient(cfg.ClientConfig)
	return &Listener{
		cfg:          cfg,
		client:       client,
		machineRepo:  machineRepo,
		incidentRepo: incidentRepo,
	}, nil
}

// Start establishes the MQTT connection and subscribes to the status topic.
func (l *Listener) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.started {
		return nil
	}

	if err := l.client.Connect(); err != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}

	if err := l.client.Subscribe(l.cfg.StatusTopic, l.cfg.QoS, l.handleStatusMessage); err != nil {
		l.client.Disconnect()
		return fmt.Errorf("subscribe failed for topic %s: %w", l.cfg.StatusTopic, err)
	}

	l.started = true
	logger.Info("Telemetry listener started", zap.String("topic", l.cfg.StatusTopic))
	return nil
}

// Stop unsubscribes and disconnects from the broker.
func (l *Listener) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.started {
		return
	}

	if err := l.client.Unsubscribe(l.cfg.StatusTopic); err != nil {
		logger.Warn("Failed to unsubscribe from status topic", zap.Error(err))
	}
	l.client.Disconnect()
	l.started = false
}

func (l *Listener) handleStatusMessage(topic string, payload []byte) {
	var msg StatusMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		logger.Warn("Dropping malformed telemetry message",
			zap.String("topic", topic),
			zap.Error(err),
		)
		return
	}

	if msg.MachineCode == "" {
		logger.Warn("Dropping telemetry message without machine code",
			zap.String("topic", topic),
		)
		return
	}

	status := domainMachine.Status(msg.Status)
	if !domainMachine.IsValidStatus(status) {
		logger.Warn("Dropping telemetry message with unknown status",
			zap.String("machine_code", msg.MachineCode),
			zap.String("status", msg.Status),
		)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	m, err := l.machineRepo.GetByCode(ctx, msg.MachineCode)
	if err != nil {
		logger.Warn("Telemetry for unknown machine",
			zap.String("machine_code", msg.MachineCode),
			zap.Error(err),
		)
		return
	}

	if m.Status != status {
		if err := l.machineRepo.UpdateStatus(ctx, m.ID, status); err != nil {
			logger.Error("Failed to apply telemetry status",
				zap.String("machine_id", m.ID.String()),
				zap.Error(err),
			)
			return
		}

		logger.Info("Machine status updated from telemetry",
			zap.String("machine_id", m.ID.String()),
			zap.String("status", string(status)),
			zap.String("event", "telemetry_status_applied"),
		)
	}

	if msg.Alarm != nil && *msg.Alarm != "" {
		l.openAlarmIncident(ctx, m, msg)
	}
}

// openAlarmIncident records an automatic incident for an alarm. The
// reporter is nil so these are distinguishable from operator reports.
func (l *Listener) openAlarmIncident(ctx context.Context, m *domainMachine.Machine, msg StatusMessage) {
	occurredAt := time.Now()
	if msg.Timestamp != nil {
		occurredAt = *msg.Timestamp
	}

	inc := &domainIncident.Incident{
		MachineID:   m.ID,
		ReporterID:  nil,
		Title:       fmt.Sprintf("Alarm on machine %s", m.Code),
		Description: *msg.Alarm,
		Severity:    domainIncident.SeverityHigh,
		Status:      domainIncident.StatusOpen,
		OccurredAt:  occurredAt,
		Attachments: []string{},
	}

	if err := l.incidentRepo.Create(ctx, inc); err != nil {
		logger.Error("Failed to open incident from telemetry alarm",
			zap.String("machine_id", m.ID.String()),
			zap.Error(err),
		)
		return
	}

	logger.Info("Incident opened from telemetry alarm",
		zap.String("incident_id", inc.ID.String()),
		zap.String("machine_id", m.ID.String()),
		zap.String("event", "telemetry_incident_opened"),
	)
}
