package main

import (
	"log"

	"github.com/greeddj/mailreport-go/cmd"
)

func main() {
	err := cmd.Run()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
}
