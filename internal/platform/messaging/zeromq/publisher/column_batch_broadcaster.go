package publisher

import (
	"context"
	"fmt"
	"log"
	"time"

	"blockdir/internal/domain"
	"blockdir/internal/platform/config"
	"blockdir/internal/platform/messaging/zeromq/message"

	"github.com/go-zeromq/zmq4"
	json "github.com/json-iterator/go"
)

const ColumnBatchTopic = "column_batch"

// ColumnBatchBroadcaster pushes applied batches to the sequencer, which
// relays them to every other node's listener over PUB/SUB. There is no
// commit-init/commit-confirm handshake: a single writer owns each row, so
// a batch either lands or the replica misses it; a failed send is not
// retried.
type ColumnBatchBroadcaster struct {
	push   zmq4.Socket
	config config.Config
}

func NewColumnBatchBroadcaster(cfg config.Config) *ColumnBatchBroadcaster {
	reconnectOpt := zmq4.WithAutomaticReconnect(true)
	retryOpt := zmq4.WithDialerRetry(time.Second * 5)
	socket := zmq4.NewPush(context.Background(), reconnectOpt, retryOpt)
	return &ColumnBatchBroadcaster{
		push:   socket,
		config: cfg,
	}
}

func (b *ColumnBatchBroadcaster) Initialize() {
	err := b.push.Dial(fmt.Sprintf("tcp://%s:%d", b.config.SequencerHost, b.config.SequencerPullPort))
	if err != nil {
		log.Println("ColumnBatchBroadcaster suffered an error", err)
		return
	}
	log.Println("ColumnBatchBroadcaster started")
}

func (b *ColumnBatchBroadcaster) BroadcastBatch(batch domain.ColumnBatch) error {
	msg := message.ColumnBatchMessageFrom(batch)
	payload, err := MarshalColumnBatchMessage(msg)
	if err != nil {
		return err
	}
	if err := b.push.Send(zmq4.NewMsg(payload)); err != nil {
		log.Println("Error sending column batch message:", err)
		return err
	}
	return nil
}

func MarshalColumnBatchMessage(msg message.ColumnBatchMessage) ([]byte, error) {
	return json.Marshal(msg)
}
