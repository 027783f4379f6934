package esdbs

import (
	"fmt"

	"github.com/EventStore/EventStore-Client-Go/esdb"
)

// NewLocalESDBStore connects to a local, insecure, esdb instance.
func NewLocalESDBStore(host string, port int) (*ESDBStateStore, error) {
	connection := fmt.Sprintf("esdb://admin:changeit@%s:%d?tls=false", host, port)

	return NewConnectedStore(connection)
}

func NewConnectedStore(connection string) (*ESDBStateStore, error) {
	settings, err := esdb.ParseConnectionString(connection)
	if err != nil {
		return nil, err
	}

	client, err := esdb.NewClient(settings)
	if err != nil {
		return nil, err
	}

	return NewStateStore(client), nil
}
