package model

import "fmt"

// Cluster identifies a Solana cluster. Balance, price and history
// state are always keyed by cluster first so switching never mixes
// snapshots between networks.
type Cluster string

const (
	ClusterMainnet Cluster = "mainnet-beta"
	ClusterTestnet Cluster = "testnet"
	ClusterDevnet  Cluster = "devnet"
)

// ParseCluster validates a cluster name from config or a request.
func ParseCluster(s string) (Cluster, error) {
	switch Cluster(s) {
	case ClusterMainnet, ClusterTestnet, ClusterDevnet:
		return Cluster(s), nil
	}
	return "", fmt.Errorf("unknown cluster %q: must be %s, %s or %s",
		s, ClusterMainnet, ClusterTestnet, ClusterDevnet)
}

// String implements fmt.Stringer.
func (c Cluster) String() string {
	return string(c)
}
