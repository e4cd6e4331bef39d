package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/StroziSolci/Projeto-Fifa/controller"
	"github.com/StroziSolci/Projeto-Fifa/dataset"
	"github.com/StroziSolci/Projeto-Fifa/images"
	"github.com/StroziSolci/Projeto-Fifa/web"
	"github.com/itbasis/go-clock"
	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	portNum := 3000 // 3000 is the default
	port := os.Getenv("PORT")
	if port != "" {
		portNum, err = strconv.Atoi(port)
		if err != nil {
			log.Fatalf("error parsing port number: %v", err)
		}
	}

	datasetPath := os.Getenv("DATASET_PATH")
	if datasetPath == "" {
		datasetPath = dataset.DefaultPath
	}

	imageTimeout := images.DefaultTimeout
	if v := os.Getenv("IMAGE_TIMEOUT"); v != "" {
		imageTimeout, err = time.ParseDuration(v)
		if err != nil {
			log.Fatalf("error parsing image timeout: %v", err)
		}
	}

	imageCacheSize := 0 // unbounded
	if v := os.Getenv("IMAGE_CACHE_SIZE"); v != "" {
		imageCacheSize, err = strconv.Atoi(v)
		if err != nil {
			log.Fatalf("error parsing image cache size: %v", err)
		}
	}

	lazyLoad := false
	if v := os.Getenv("LAZY_LOAD"); v != "" {
		lazyLoad, err = strconv.ParseBool(v)
		if err != nil {
			log.Fatalf("error parsing lazy load flag: %v", err)
		}
	}

	var corsOrigins []string
	for _, o := range strings.Split(os.Getenv("CORS_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}

	clock := clock.New()
	state := dataset.New(os.DirFS("."), datasetPath, clock)

	// Unless it's lazy the dataset is read before accepting requests, a
	// broken file stops the server right away.
	if !lazyLoad {
		if _, err := state.Load(context.Background()); err != nil {
			log.Fatalf("error loading dataset: %v", err)
		}
	}

	resolver, err := images.New(images.Options{
		Timeout:    imageTimeout,
		MaxEntries: imageCacheSize,
	})
	if err != nil {
		log.Fatalf("error creating image resolver: %v", err)
	}

	ctrl, err := controller.New(clock, state, resolver)
	if err != nil {
		log.Fatalf("error creating a new controller: %v", err)
	}

	server, err := web.NewServer(web.Options{Port: portNum, CORSOrigins: corsOrigins}, ctrl)
	if err != nil {
		log.Fatalf("error creating new web server: %v", err)
	}

	shutdown := make(chan bool)
	wg := &sync.WaitGroup{}

	// Setup a handler to catch ctrl-c signals and properly shutdown everything.
	intChannel := make(chan os.Signal, 2)
	signal.Notify(intChannel, os.Interrupt)
	go func() {
		<-intChannel
		close(shutdown)

		if err := waitTimeout(wg, 10*time.Second); err != nil {
			log.Printf("timed out waiting for proper shutdown")
			os.Exit(255)
		}
	}()

	// Start the web server
	wg.Add(1)
	go server.ListenAndServe(shutdown, wg)

	// Wait for everything to stop.
	wg.Wait()
	log.Printf("server shutdown")
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	c := make(chan any)
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return nil // completed normally
	case <-time.After(timeout):
		return errors.New("timed out waiting")
	}
}
