package ssdp

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strings"
)

const (
	multicastAddr = "239.255.255.250:1900"
	SearchTarget  = "urn:home-panel:device:panel:1"
	deviceUUID    = "6f1d2c8e-3b5a-4f0e-9c7d-a1b2c3d4e5f6"
)

// Server answers SSDP M-SEARCH requests with the location of the panel page.
type Server struct {
	ip     string
	port   int
	logger *slog.Logger
}

func NewServer(ip string, port int, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{ip: ip, port: port, logger: logger}
}

// Start listens on the SSDP multicast group until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	addr, err := net.ResolveUDPAddr("udp4", multicastAddr)
	if err != nil {
		return err
	}

	conn, err := net.ListenMulticastUDP("udp4", nil, addr)
	if err != nil {
		return fmt.Errorf("join ssdp group: %w", err)
	}
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	buf := make([]byte, 1024)
	for {
		n, src, err := conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			continue
		}

		if shouldRespond(string(buf[:n])) {
			s.respond(src)
		}
	}
}

func shouldRespond(msg string) bool {
	if !strings.Contains(msg, "M-SEARCH") {
		return false
	}
	return strings.Contains(msg, SearchTarget) ||
		strings.Contains(msg, "upnp:rootdevice") ||
		strings.Contains(msg, "ssdp:all")
}

func (s *Server) response() string {
	return fmt.Sprintf("HTTP/1.1 200 OK\r\n"+
		"CACHE-CONTROL: max-age=100\r\n"+
		"EXT:\r\n"+
		"LOCATION: http://%s:%d/panel\r\n"+
		"SERVER: home-panel/1.0 UPnP/1.1\r\n"+
		"ST: %s\r\n"+
		"USN: uuid:%s::%s\r\n\r\n", s.ip, s.port, SearchTarget, deviceUUID, SearchTarget)
}

func (s *Server) respond(dest *net.UDPAddr) {
	conn, err := net.DialUDP("udp4", nil, dest)
	if err != nil {
		s.logger.Debug("ssdp_respond_failed", "dest", dest.String(), "error", err)
		return
	}
	defer conn.Close()

	conn.Write([]byte(s.response()))
}
