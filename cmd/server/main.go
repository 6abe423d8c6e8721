package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/moodlens/moodlens/config"
	"github.com/moodlens/moodlens/internal/catalog"
	"github.com/moodlens/moodlens/internal/emotion"
	"github.com/moodlens/moodlens/internal/events"
	"github.com/moodlens/moodlens/internal/history"
	"github.com/moodlens/moodlens/internal/logging"
	"github.com/moodlens/moodlens/internal/monitoring"
	"github.com/moodlens/moodlens/internal/sentiment"
	"github.com/moodlens/moodlens/internal/server"
	"github.com/moodlens/moodlens/internal/transcription"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := buildStore(ctx)
	if err != nil {
		slog.Error("[Main] Failed to initialize history store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	var recorderOpts []history.Option
	if broker := os.Getenv("KAFKA_BROKER"); broker != "" {
		publisher, err := events.NewKafkaPublisher(broker)
		if err != nil {
			slog.Error("[Main] Failed to initialize event publisher", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer publisher.Close()
		recorderOpts = append(recorderOpts, history.WithPublisher(publisher))
	}
	recorder := history.NewRecorder(store, recorderOpts...)

	cat, err := catalog.Load()
	if err != nil {
		slog.Error("[Main] Failed to load recommendation catalogs", slog.String("error", err.Error()))
		os.Exit(1)
	}

	transcriber := buildTranscriber(ctx)

	var emotions server.EmotionAnalyzer
	emotionHealthy := &atomic.Bool{}
	emotionHealthy.Store(true)
	if endpoint := os.Getenv("EMOTION_API_URL"); endpoint != "" {
		client := emotion.NewClient(endpoint)
		emotions = client
		go monitoring.MonitorCollaboratorHealth(ctx, "face-emotion", client, emotionHealthy)
	} else {
		slog.Warn("[Main] EMOTION_API_URL not set, video analysis disabled")
	}

	handlers := server.NewHandlers(sentiment.NewAnalyzer(), transcriber, emotions, cat, recorder)
	handlers.SetEmotionHealth(emotionHealthy)

	srv := server.NewServer(server.Config{Addr: os.Getenv("ADDR")}, handlers)
	if err := srv.Start(ctx); err != nil {
		slog.Error("[Main] Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func buildStore(ctx context.Context) (history.Store, error) {
	if os.Getenv("HISTORY_BACKEND") == "dynamodb" {
		return history.NewDynamoStore(ctx, getEnv("AWS_REGION", "us-west-2"), os.Getenv("AWS_ENDPOINT"))
	}
	return history.NewSQLiteStore(getEnv("MOOD_DB_PATH", "mood_data.db"))
}

func buildTranscriber(ctx context.Context) transcription.Transcriber {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		slog.Warn("[Main] OPENAI_API_KEY not set, voice analysis disabled")
		return nil
	}

	var transcriber transcription.Transcriber = transcription.NewWhisperTranscriber(apiKey)

	if addr := os.Getenv("VALKEY_INIT_ADDRESS"); addr != "" {
		client, err := valkey.NewClient(valkey.ClientOption{
			InitAddress:      []string{addr},
			Password:         os.Getenv("VALKEY_PASSWORD"),
			ConnWriteTimeout: 5 * time.Second,
		})
		if err != nil {
			slog.Error("[Main] Failed to connect to valkey, transcripts will not be cached",
				slog.String("error", err.Error()))
			return transcriber
		}

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := client.Do(pingCtx, client.B().Ping().Build()).Error(); err != nil {
			slog.Error("[Main] Failed to ping valkey, transcripts will not be cached",
				slog.String("error", err.Error()))
			client.Close()
			return transcriber
		}

		slog.Info("[Main] Transcript caching enabled")
		transcriber = transcription.NewCachingTranscriber(transcriber, transcription.NewTranscriptCache(client))
	}

	return transcriber
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}
