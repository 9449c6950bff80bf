package services

import (
	"fmt"
	"net"
)

// Loopback ports tried for the OAuth redirect listener.
const (
	CallbackPortStart = 8085
	CallbackPortEnd   = 8099
)

// FindAvailablePort finds an available loopback port in the given range.
func FindAvailablePort(startPort, endPort int) (int, error) {
	for port := startPort; port <= endPort; port++ {
		addr := fmt.Sprintf("127.0.0.1:%d", port)
		listener, err := net.Listen("tcp", addr)
		if err == nil {
			listener.Close()
			return port, nil
		}
	}
	return 0, fmt.Errorf("no available port in range %d-%d", startPort, endPort)
}
