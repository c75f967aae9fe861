package launchpad

import (
	"context"

	"github.com/miaswap/launchpad/schema"
	"github.com/segmentio/kafka-go"
)

type KWriter struct {
	w *kafka.Writer
}

func NewKWriter(topic string, uri string) (*KWriter, error) {
	w := &kafka.Writer{
		Addr:     kafka.TCP(uri),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &KWriter{
		w: w,
	}, nil
}

func (kw *KWriter) Write(body []byte) error {
	err := kw.w.WriteMessages(
		context.Background(),
		kafka.Message{
			Value: body,
		},
	)
	return err
}

func (kw *KWriter) Close() {
	kw.w.Close()
}

func NewKWriters(uri string) (map[string]*KWriter, error) {
	mintWriter, err := NewKWriter(schema.MintTopic, uri)
	if err != nil {
		return nil, err
	}
	auctionWriter, err := NewKWriter(schema.AuctionTopic, uri)
	if err != nil {
		return nil, err
	}
	stakeWriter, err := NewKWriter(schema.StakeTopic, uri)
	if err != nil {
		return nil, err
	}
	return map[string]*KWriter{
		schema.MintTopic:    mintWriter,
		schema.AuctionTopic: auctionWriter,
		schema.StakeTopic:   stakeWriter,
	}, nil
}
