package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

var maxDevices int = 2000
var httpHostPort string = "127.0.0.1:1080"

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))

func main() {
	deviceIDs := make([]string, maxDevices)
	for i := 0; i < maxDevices; i++ {
		deviceIDs[i] = uuid.NewString()
	}
	fmt.Printf("generated %v device IDs\n", maxDevices)

	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	var startTime time.Time
	var usedTime time.Duration

	startTime = time.Now()
	wg := sync.WaitGroup{}
	for i := 0; i < maxDevices; i++ {
		i := i
		wg.Add(1)
		go func() {
			sendHeartbeat(deviceIDs[i])
			fmt.Printf("\rsent heartbeat for device %v", i)
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rsent heartbeats for %v devices: used time=%v seconds, throughput=%v action/second\n",
		maxDevices, usedTime.Seconds(), float64(maxDevices)/usedTime.Seconds(),
	)

	startTime = time.Now()
	wg = sync.WaitGroup{}
	for i := 0; i < maxDevices; i++ {
		i := i
		wg.Add(1)
		go func() {
			doAction(deviceIDs[i])
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\n\rdid actions for %v devices: used time=%v seconds, throughput=%v action/second\n",
		maxDevices, usedTime.Seconds(), float64(maxDevices*3)/usedTime.Seconds(),
	)
}

func rndFloat64(min, max float64, decimal int) float64 {
	val := min + rnd.Float64()*(max-min)
	multiplier := float64(math.Pow10(decimal))
	return float64(math.Round(float64(val)*float64(multiplier))) / multiplier
}

func postJSON(path string, payload any) {
	jsonData, _ := json.Marshal(payload)
	resp, err := http.Post(fmt.Sprintf("http://%s%s", httpHostPort, path), "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		fmt.Printf("\nerror: %v\n", err)
		return
	}
	defer resp.Body.Close()
}

func sendHeartbeat(deviceID string) {
	payload := map[string]any{
		"model":        "bench-device",
		"batteryLevel": rndFloat64(0.0, 100.0, 2),
		"isCharging":   rnd.Int31n(2) == 0,
	}
	postJSON(fmt.Sprintf("/devices/%s/heartbeat", deviceID), payload)
}

func doAction(deviceID string) {
	actions := []func(){
		genHeartbeatAction(deviceID),
		genUploadLocationAction(deviceID),
		genUploadSmsAction(deviceID),
	}
	actionNames := []string{
		"Heartbeat",
		"UploadLocation",
		"UploadSms",
	}
	rnd.Shuffle(len(actions), func(i, j int) {
		actions[i], actions[j] = actions[j], actions[i]
		actionNames[i], actionNames[j] = actionNames[j], actionNames[i]
	})
	for index, action := range actions {
		action()
		fmt.Printf("\rexecuted action %v for device %v", actionNames[index], deviceID)
		time.Sleep(time.Duration(100+rnd.Int31n(1000)) * time.Millisecond)
	}
}

func genHeartbeatAction(deviceID string) func() {
	return func() {
		sendHeartbeat(deviceID)
	}
}

func genUploadLocationAction(deviceID string) func() {
	return func() {
		payload := map[string]any{
			"category": "location",
			"payload": map[string]any{
				"lat":      rndFloat64(-90.0, 90.0, 6),
				"lon":      rndFloat64(-180.0, 180.0, 6),
				"accuracy": rndFloat64(1.0, 50.0, 1),
			},
		}
		postJSON(fmt.Sprintf("/devices/%s/data", deviceID), payload)
	}
}

func genUploadSmsAction(deviceID string) func() {
	return func() {
		payload := map[string]any{
			"category": "sms",
			"payload": []map[string]any{
				{
					"from": fmt.Sprintf("+1%09d", rnd.Int31n(1000000000)),
					"text": "benchmark message",
					"at":   time.Now().Format(time.RFC3339),
				},
			},
		}
		postJSON(fmt.Sprintf("/devices/%s/data", deviceID), payload)
	}
}
