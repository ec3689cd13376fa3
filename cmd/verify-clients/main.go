package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openai/openai-go/v3"
	"go.uber.org/zap"

	"github.com/nutrilens/nutrilens-backend/internal/ai"
	"github.com/nutrilens/nutrilens-backend/internal/azure"
)

// Connectivity smoke tool: checks the database, the OpenAI API and blob
// storage with the same clients the server uses. Run it against a fresh
// environment before starting the backend for real.
func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	databaseURL := os.Getenv("DATABASE_URL")
	openaiKey := os.Getenv("OPENAI_API_KEY")
	openaiModel := os.Getenv("OPENAI_MODEL")
	storageAccountName := os.Getenv("AZURE_STORAGE_ACCOUNT_NAME")
	storageAccountKey := os.Getenv("AZURE_STORAGE_ACCOUNT_KEY")

	if databaseURL == "" {
		logger.Fatal("Missing database credentials. Set DATABASE_URL")
	}
	if openaiKey == "" {
		logger.Fatal("Missing OpenAI credentials. Set OPENAI_API_KEY")
	}
	if openaiModel == "" {
		openaiModel = "gpt-4o-mini"
	}
	if storageAccountName == "" || storageAccountKey == "" {
		logger.Fatal("Missing Azure Storage credentials. Set AZURE_STORAGE_ACCOUNT_NAME and AZURE_STORAGE_ACCOUNT_KEY")
	}

	ctx := context.Background()

	logger.Info("=== Testing database connection ===")
	if err := testDatabase(ctx, databaseURL, logger); err != nil {
		logger.Error("Database test failed", zap.Error(err))
	} else {
		logger.Info("Database test passed")
	}

	logger.Info("=== Testing OpenAI client ===")
	if err := testOpenAIClient(ctx, openaiKey, openaiModel, logger); err != nil {
		logger.Error("OpenAI client test failed", zap.Error(err))
	} else {
		logger.Info("OpenAI client test passed")
	}

	logger.Info("=== Testing blob storage client ===")
	if err := testBlobStorageClient(ctx, storageAccountName, storageAccountKey, logger); err != nil {
		logger.Error("Blob storage client test failed", zap.Error(err))
	} else {
		logger.Info("Blob storage client test passed")
	}

	logger.Info("=== All tests completed ===")
}

func testDatabase(ctx context.Context, databaseURL string, logger *zap.Logger) error {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	var version string
	if err := pool.QueryRow(ctx, "SELECT version()").Scan(&version); err != nil {
		return fmt.Errorf("version query failed: %w", err)
	}

	logger.Info("Database reachable", zap.String("version", version))

	return nil
}

func testOpenAIClient(ctx context.Context, apiKey, model string, logger *zap.Logger) error {
	client, err := ai.NewClient(apiKey, model, model, logger)
	if err != nil {
		return fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	resp, err := client.Complete(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage("Reply with the single word: ready"),
		},
	})
	if err != nil {
		return fmt.Errorf("chat completion failed: %w", err)
	}

	logger.Info("OpenAI response received",
		zap.String("response", resp.Content),
		zap.Int("response_length", len(resp.Content)),
	)

	return nil
}

func testBlobStorageClient(ctx context.Context, accountName, accountKey string, logger *zap.Logger) error {
	containerName := os.Getenv("AZURE_STORAGE_IMAGE_CONTAINER")
	if containerName == "" {
		containerName = "meal-images"
	}

	client, err := azure.NewBlobStorageClient(accountName, accountKey, containerName, logger)
	if err != nil {
		return fmt.Errorf("failed to create blob storage client: %w", err)
	}

	testImageData := []byte("not really a jpeg, but close enough for a smoke test")
	testFilename := fmt.Sprintf("verify-%d.jpg", time.Now().Unix())

	logger.Info("Testing image upload", zap.String("filename", testFilename))

	blobName, err := client.UploadImage(ctx, testFilename, testImageData, "image/jpeg")
	if err != nil {
		return fmt.Errorf("image upload failed: %w", err)
	}

	logger.Info("Image uploaded successfully", zap.String("blob_name", blobName))

	downloadedData, err := client.DownloadImage(ctx, blobName)
	if err != nil {
		return fmt.Errorf("image download failed: %w", err)
	}

	if string(downloadedData) != string(testImageData) {
		return fmt.Errorf("downloaded data doesn't match uploaded data")
	}

	logger.Info("Image downloaded and verified successfully",
		zap.Int("size_bytes", len(downloadedData)),
	)

	return nil
}
