package events

import (
	"encoding/json"
	"log"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	SubjectAssetIngested    = "arstudio.asset.ingested"
	SubjectProjectPublished = "arstudio.project.published"
)

// AssetIngested announces a newly stored asset so downstream processors
// (thumbnailers, transcoders) can pick it up.
type AssetIngested struct {
	AssetID    string    `json:"asset_id"`
	Kind       string    `json:"kind"`
	URL        string    `json:"url"`
	SizeBytes  int64     `json:"size_bytes"`
	IngestedAt time.Time `json:"ingested_at"`
}

// ProjectPublished announces a publish transition.
type ProjectPublished struct {
	ProjectID   string    `json:"project_id"`
	Slug        string    `json:"slug"`
	Visibility  string    `json:"visibility"`
	PublishedAt time.Time `json:"published_at"`
}

// Publisher emits domain events over NATS. Publishing is best-effort:
// the API keeps working when the broker is down.
type Publisher struct {
	nc *nats.Conn
}

// Connect dials the NATS server. A failed connection is reported but not
// fatal; the returned publisher then drops events.
func Connect(url string) *Publisher {
	if url == "" {
		url = nats.DefaultURL
		log.Printf("NATS_URL not set, using default: %s", url)
	}
	nc, err := nats.Connect(url)
	if err != nil {
		log.Printf("Warning: NATS connection failed, events disabled: %v", err)
		return &Publisher{}
	}
	log.Printf("Connected to NATS server at %s", url)
	return &Publisher{nc: nc}
}

func (p *Publisher) publish(subject string, payload any) {
	if p == nil || p.nc == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", subject, err)
		return
	}
	if err := p.nc.Publish(subject, data); err != nil {
		log.Printf("Failed to publish %s event: %v", subject, err)
	}
}

func (p *Publisher) AssetIngested(evt AssetIngested) {
	p.publish(SubjectAssetIngested, evt)
}

func (p *Publisher) ProjectPublished(evt ProjectPublished) {
	p.publish(SubjectProjectPublished, evt)
}

// Close drains the connection.
func (p *Publisher) Close() {
	if p != nil && p.nc != nil {
		p.nc.Close()
	}
}
