package sensorproto_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sensorproto "github.com/fenwick-iot/sensorproto"
)

func TestListenAndServeAnswersRetrieveProperty(t *testing.T) {
	reg := newTestRegistry()
	platform := &testPlatform{}
	target := &testTarget{value: 23.25}
	moduleTarget := &testModuleTarget{}

	listenerAddr := mustListenUDP(t)
	addr := listenerAddr.LocalAddr().String()
	listenerAddr.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- sensorproto.ListenAndServe(ctx, addr, reg, platform, target, moduleTarget)
	}()
	time.Sleep(20 * time.Millisecond) // let the listener bind

	client, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 0})
	require.NoError(t, err)
	defer client.Close()

	remote, err := net.ResolveUDPAddr("udp", addr)
	require.NoError(t, err)

	req := sensorproto.RetrieveProperty(0x0E, 3)
	buf := sensorproto.NewBuffer()
	_, err = req.Write(buf)
	require.NoError(t, err)
	path := []byte{0x30, sensorproto.PlatformTemperature, sensorproto.TemperatureValue}
	frame := append(buf.Bytes(), path...)

	_, err = client.WriteToUDP(frame, remote)
	require.NoError(t, err)

	client.SetReadDeadline(time.Now().Add(time.Second))
	reply := make([]byte, 512)
	n, _, err := client.ReadFromUDP(reply)
	require.NoError(t, err)

	resp, err := sensorproto.ReadResponse(sensorproto.NewSliceReader(reply[:n]))
	require.NoError(t, err)
	assert.Equal(t, sensorproto.ResponseOk, resp.Kind)

	cancel()
	<-serveErr
}
