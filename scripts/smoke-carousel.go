//go:build ignore

// Smoke-tests a running server: logs in with ADMIN_PIN, writes a carousel
// layout and reads the public carousel back.
//
//	ADMIN_PIN=1234 go run scripts/smoke-carousel.go -base http://localhost:8080 -ids abc,def
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/go-resty/resty/v2"
)

type slotAssignment struct {
	Position int     `json:"position"`
	VideoID  *string `json:"videoId"`
}

type carouselResponse struct {
	Success bool `json:"success"`
	Data    struct {
		IsFromDatabase bool `json:"isFromDatabase"`
		Slots          []struct {
			Position      int    `json:"position"`
			ID            string `json:"id"`
			IsPlaceholder bool   `json:"isPlaceholder"`
		} `json:"slots"`
	} `json:"data"`
	Error string `json:"error"`
}

func main() {
	base := flag.String("base", "http://localhost:8080", "server base URL")
	ids := flag.String("ids", "", "comma separated video ids for positions 1..n")
	flag.Parse()

	pin := os.Getenv("ADMIN_PIN")
	if pin == "" {
		fail("ADMIN_PIN must be set")
	}

	client := resty.New().SetBaseURL(strings.TrimRight(*base, "/"))

	resp, err := client.R().
		SetBody(map[string]string{"pin": pin}).
		Post("/api/auth/login")
	if err != nil {
		fail("login request: %v", err)
	}
	if resp.IsError() {
		fail("login rejected: %d %s", resp.StatusCode(), resp.String())
	}
	client.SetCookies(resp.Cookies())
	fmt.Println("logged in")

	slots := make([]slotAssignment, 9)
	var bound []string
	if *ids != "" {
		bound = strings.Split(*ids, ",")
	}
	for i := range slots {
		slots[i].Position = i + 1
		if i < len(bound) && bound[i] != "" {
			id := strings.TrimSpace(bound[i])
			slots[i].VideoID = &id
		}
	}

	resp, err = client.R().
		SetBody(map[string]interface{}{"slots": slots}).
		Put("/api/admin/carousel")
	if err != nil {
		fail("update request: %v", err)
	}
	if resp.IsError() {
		fail("update rejected: %d %s", resp.StatusCode(), resp.String())
	}
	fmt.Printf("carousel updated with %d bound slots\n", len(bound))

	var carousel carouselResponse
	resp, err = client.R().SetResult(&carousel).SetError(&carousel).Get("/api/carousel")
	if err != nil {
		fail("carousel request: %v", err)
	}
	if resp.IsError() {
		fail("carousel unavailable: %d %s", resp.StatusCode(), carousel.Error)
	}

	fmt.Printf("isFromDatabase=%v\n", carousel.Data.IsFromDatabase)
	for _, s := range carousel.Data.Slots {
		fmt.Printf("  %d  %-20s placeholder=%v\n", s.Position, s.ID, s.IsPlaceholder)
	}
}

func fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
