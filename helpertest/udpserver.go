package helpertest

import (
	"net"
	"sync/atomic"

	"github.com/dnsvantage/dnsvantage/util"

	"github.com/miekg/dns"
)

// MockUDPServer is a nameserver double listening on a random local port.
type MockUDPServer struct {
	callCount int32
	ln        *net.UDPConn
	answerFn  func(request *dns.Msg) (response *dns.Msg)
}

func NewMockUDPServer() *MockUDPServer {
	return &MockUDPServer{}
}

func (s *MockUDPServer) WithAnswerRR(answers ...string) *MockUDPServer {
	s.answerFn = func(request *dns.Msg) (response *dns.Msg) {
		msg := new(dns.Msg)
		msg.Answer = MustRRs(answers...)

		return msg
	}

	return s
}

func (s *MockUDPServer) WithAnswerError(errorCode int) *MockUDPServer {
	s.answerFn = func(request *dns.Msg) (response *dns.Msg) {
		msg := new(dns.Msg)
		msg.Rcode = errorCode

		return msg
	}

	return s
}

func (s *MockUDPServer) WithAnswerFn(fn func(request *dns.Msg) (response *dns.Msg)) *MockUDPServer {
	s.answerFn = fn

	return s
}

func (s *MockUDPServer) GetCallCount() int {
	return int(atomic.LoadInt32(&s.callCount))
}

func (s *MockUDPServer) Close() {
	if s.ln != nil {
		_ = s.ln.Close()
	}
}

// Start begins serving and returns the listen address (host:port).
func (s *MockUDPServer) Start() string {
	addr, err := net.ResolveUDPAddr("udp4", ":0")
	util.FatalOnError("can't resolve address: ", err)

	ln, err := net.ListenUDP("udp4", addr)
	util.FatalOnError("can't create connection: ", err)

	s.ln = ln

	go s.serve(ln)

	return ln.LocalAddr().String()
}

func (s *MockUDPServer) serve(ln *net.UDPConn) {
	const bufferSize = 1024

	for {
		buffer := make([]byte, bufferSize)

		n, addr, err := ln.ReadFromUDP(buffer)
		if err != nil {
			// closed
			break
		}

		msg := new(dns.Msg)
		err = msg.Unpack(buffer[:n])

		util.FatalOnError("can't deserialize message: ", err)

		response := s.answerFn(msg)

		atomic.AddInt32(&s.callCount, 1)
		// nil should indicate an error
		if response == nil {
			_, _ = ln.WriteToUDP([]byte("dummy"), addr)

			continue
		}

		rCode := response.Rcode
		response.SetReply(msg)

		if rCode != 0 {
			response.Rcode = rCode
		}

		b, err := response.Pack()
		util.FatalOnError("can't serialize message: ", err)

		_, err = ln.WriteToUDP(b, addr)
		if err != nil {
			// closed
			break
		}
	}
}
