package listener

import (
	"context"
	"errors"
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

// ColumnBatchListener subscribes to the sequencer's relay and applies
// every batch it sees to the local repository. Batches already owned by
// this node are naturally idempotent to re-apply, since storage-layer LWW
// keyed on the entry's timestamp discards anything it has already seen.
type ColumnBatchListener struct {
	sub    zmq4.Socket
	config config.Config
	bm     *domain.ColumnBatchManager
}

func NewColumnBatchListener(bm *domain.ColumnBatchManager, cfg config.Config) *ColumnBatchListener {
	reconnectOpt := zmq4.WithAutomaticReconnect(true)
	retryOpt := zmq4.WithDialerRetry(time.Second * 2)
	sub := zmq4.NewSub(context.Background(), reconnectOpt, retryOpt)
	sub.SetOption(zmq4.OptionSubscribe, ColumnBatchTopic)
	return &ColumnBatchListener{sub, cfg, bm}
}

func (l *ColumnBatchListener) Listen() {
	err := l.sub.Dial(fmt.Sprintf("tcp://%s:%d", l.config.SequencerHost, l.config.SequencerPubPort))
	if err != nil {
		return
	}

	log.Println("ColumnBatchListener - started.")
	msgCh := make(chan zmq4.Msg, 20000)

	go func() {
		for {
			msg, err := l.sub.Recv()
			if err != nil {
				log.Println("Error receiving message:", err)
				if errors.Is(err, zmq4.ErrClosedConn) {
					log.Println("Socket closed, exiting listener")
					return
				}
				continue
			}
			msgCh <- msg
		}
	}()

	for msg := range msgCh {
		if len(msg.Frames) < 2 {
			continue
		}
		topic := string(msg.Frames[0])
		switch topic {
		case ColumnBatchTopic:
			var m message.ColumnBatchMessage
			if err := json.Unmarshal(msg.Frames[1], &m); err != nil {
				log.Println("Error unmarshaling column batch message:", err)
				continue
			}
			if err := l.bm.ApplyReplicated(m.ToColumnBatch()); err != nil {
				log.Println("Error applying replicated batch:", err)
			}
		}
	}
}
