// Command devserver runs a local fake of the text-to-video API.
package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"texttovideo/config"
	"texttovideo/devserver"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	port := flag.String("port", config.GetEnvOrDefault("DEVSERVER_PORT", "5000"), "HTTP port")
	videoPath := flag.String("video", os.Getenv("DEVSERVER_VIDEO"), "MP4 file served for finished jobs (placeholder bytes if empty)")
	flag.Parse()

	var video []byte
	if *videoPath != "" {
		data, err := os.ReadFile(*videoPath)
		if err != nil {
			log.Fatalf("failed to read video: %v", err)
		}
		video = data
	}

	gin.SetMode(gin.ReleaseMode)
	srv := devserver.NewServer(video)
	srv.Debug = config.Load().Debug
	r := srv.NewRouter()

	addr := ":" + *port
	log.Printf("Starting fake text-to-video API on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  POST /process_text")
	log.Println("  GET  /status/:job_id")
	log.Println("  GET  /preview/:filename")
	log.Println("  GET  /download/:filename")
	log.Println("  GET  /health")
	log.Printf("Include %q in the text to make a job fail", devserver.FailMarker)

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
