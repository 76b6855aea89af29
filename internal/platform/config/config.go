package config

import (
	"flag"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultKeyspace    = "lucene"
	defaultBlockSize   = 1 << 20 // 1 MiB, matching Lucene's default merge factor sizing
	defaultTransport   = "http"
	defaultSequencePub = 7000
	defaultSequencePul = 7001
	defaultZmqApiPort  = 5555
)

var (
	portCmd   = flag.Int("port", 3000, "store node listen port")
	hostCmd   = flag.String("host", "", "store node advertised host; empty autodetects")
	framedCmd = flag.Bool("framed", false, "length-frame zmq socket payloads")
)

// Config carries every knob a store node or store client needs: transport
// selection, keyspace/column-family naming, block sizing for the virtual
// directory layer, and the WAL/sequencer wiring the replication layer uses.
type Config struct {
	Host            string
	ServerPort      int
	Framed          bool
	Transport       string
	ZmqApiPort      int
	Keyspace        string
	ColumnFamily    string
	BlockSize       int
	BufferSize      int
	WalDirectory    string
	SnapshotDir     string
	ConfigServerUrl string
	DeploymentMode  string
	SequencerHost   string
	SequencerPubPort int
	SequencerPullPort int
}

func LoadConfig() Config {
	godotenv.Load(".env")

	blockSize := intEnv("BLOCK_SIZE", defaultBlockSize)
	bufferSize := intEnv("BUFFER_SIZE", blockSize)

	transport := os.Getenv("TRANSPORT")
	if transport == "" {
		transport = defaultTransport
	}

	columnFamily := os.Getenv("COLUMN_FAMILY")
	if columnFamily == "" {
		columnFamily = defaultKeyspace
	}

	keyspace := os.Getenv("KEYSPACE")
	if keyspace == "" {
		keyspace = defaultKeyspace
	}

	host := *hostCmd
	if host == "" {
		host = os.Getenv("HOST")
	}

	return Config{
		Host:              host,
		ServerPort:        *portCmd,
		Framed:            *framedCmd,
		Transport:         transport,
		ZmqApiPort:        intEnv("ZMQ_API_PORT", defaultZmqApiPort),
		Keyspace:          keyspace,
		ColumnFamily:      columnFamily,
		BlockSize:         blockSize,
		BufferSize:        bufferSize,
		WalDirectory:      os.Getenv("WAL_DIRECTORY"),
		SnapshotDir:       os.Getenv("SNAPSHOT_DIRECTORY"),
		ConfigServerUrl:   os.Getenv("CONFIG_SERVER_URL"),
		DeploymentMode:    os.Getenv("DEPLOYMENT_MODE"),
		SequencerHost:     os.Getenv("SEQUENCER_HOST"),
		SequencerPubPort:  intEnv("SEQUENCER_PUB_PORT", defaultSequencePub),
		SequencerPullPort: intEnv("SEQUENCER_PULL_PORT", defaultSequencePul),
	}
}

func intEnv(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
