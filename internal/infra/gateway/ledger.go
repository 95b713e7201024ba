package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"

	"github.com/greenstamp/greenstamp/internal/config"
	"github.com/greenstamp/greenstamp/internal/domain"
)

var ledgerTracer = otel.Tracer("gateway.ledger")

// topicKey is the durable key-value entry holding the shared topic id.
// Every instance of the service converges on the topic created by the
// first instance to win the SetNX.
const topicKey = "greenstamp:ledger:topic"

// LedgerClient submits proof records to an append-only topic on the
// Hedera consensus service. No idempotency: re-submitting the same record
// appends a second message.
type LedgerClient struct {
	conf   config.Ledger
	client *hedera.Client
	rdb    *redis.Client
}

func NewLedgerClient(conf config.Ledger, rdb *redis.Client) (*LedgerClient, error) {
	operatorID, err := hedera.AccountIDFromString(conf.AccountID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid ledger account id")
	}
	operatorKey, err := hedera.PrivateKeyFromString(conf.PrivateKey)
	if err != nil {
		return nil, errors.Wrap(err, "invalid ledger private key")
	}

	var client *hedera.Client
	if conf.Network == "mainnet" {
		client = hedera.ClientForMainnet()
	} else {
		client = hedera.ClientForTestnet()
	}
	client.SetOperator(operatorID, operatorKey)

	return &LedgerClient{
		conf:   conf,
		client: client,
		rdb:    rdb,
	}, nil
}

func (l *LedgerClient) Notarize(ctx context.Context, record domain.ProofRecord) (domain.LedgerReceipt, error) {
	ctx, span := ledgerTracer.Start(ctx, "Ledger.Notarize")
	defer span.End()

	topicID, err := l.resolveTopic(ctx)
	if err != nil {
		span.RecordError(err)
		return domain.LedgerReceipt{}, err
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return domain.LedgerReceipt{}, errors.Wrap(err, "failed to encode proof record")
	}

	response, err := hedera.NewTopicMessageSubmitTransaction().
		SetTopicID(topicID).
		SetMessage(payload).
		SetMaxTransactionFee(hedera.NewHbar(1)).
		Execute(l.client)
	if err != nil {
		span.RecordError(err)
		return domain.LedgerReceipt{}, errors.Wrap(err, "topic message submit failed")
	}

	receipt, err := response.GetReceipt(l.client)
	if err != nil {
		span.RecordError(err)
		return domain.LedgerReceipt{}, errors.Wrap(err, "failed to get submit receipt")
	}
	if receipt.Status != hedera.StatusSuccess {
		err := fmt.Errorf("transaction failed with status: %s", receipt.Status)
		span.RecordError(err)
		return domain.LedgerReceipt{}, err
	}

	return domain.LedgerReceipt{
		TopicID:        topicID.String(),
		SequenceNumber: receipt.TopicSequenceNumber,
	}, nil
}

// resolveTopic loads the shared topic id from redis, creating the topic
// on first use.
func (l *LedgerClient) resolveTopic(ctx context.Context) (hedera.TopicID, error) {

	cached, err := l.rdb.Get(ctx, topicKey).Result()
	if err == nil && cached != "" {
		return hedera.TopicIDFromString(cached)
	}
	if err != nil && err != redis.Nil {
		return hedera.TopicID{}, errors.Wrap(err, "failed to read topic id")
	}

	created, err := l.createTopic()
	if err != nil {
		return hedera.TopicID{}, err
	}

	won, err := l.rdb.SetNX(ctx, topicKey, created.String(), 0).Result()
	if err != nil {
		return hedera.TopicID{}, errors.Wrap(err, "failed to persist topic id")
	}
	if !won {
		// Another instance created a topic first; adopt theirs. The topic
		// created here is abandoned unused.
		winner, err := l.rdb.Get(ctx, topicKey).Result()
		if err != nil {
			return hedera.TopicID{}, errors.Wrap(err, "failed to read winning topic id")
		}
		return hedera.TopicIDFromString(winner)
	}

	return created, nil
}

func (l *LedgerClient) createTopic() (hedera.TopicID, error) {
	response, err := hedera.NewTopicCreateTransaction().
		SetTopicMemo(l.conf.TopicMemo).
		SetMaxTransactionFee(hedera.NewHbar(2)).
		Execute(l.client)
	if err != nil {
		return hedera.TopicID{}, errors.Wrap(err, "topic create failed")
	}

	receipt, err := response.GetReceipt(l.client)
	if err != nil {
		return hedera.TopicID{}, errors.Wrap(err, "failed to get create receipt")
	}
	if receipt.TopicID == nil {
		return hedera.TopicID{}, fmt.Errorf("topic create returned no topic id")
	}

	return *receipt.TopicID, nil
}
