package uid

import (
	"github.com/bwmarrin/snowflake"
	"github.com/labstack/gommon/log"
	"sync"
)

var (
	node *snowflake.Node
	once sync.Once
)

// Init sets the node ID. Only the first call has any effect.
func Init(machineID int64) {
	once.Do(func() {
		var err error
		node, err = snowflake.NewNode(machineID)
		if err != nil {
			log.Fatalf("failed to initialize snowflake node: %v", err)
		}
	})
}

// Generate falls back to node 0 when Init was never called (tests, CLI).
func Generate() int64 {
	Init(0)
	return node.Generate().Int64()
}
