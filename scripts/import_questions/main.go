package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/komresu/quizonomics/internal/models"
)

// Imports bank questions from an xlsx workbook. One sheet per subject, sheet
// name must match a quiz subject. Columns:
//
//	A: question text
//	B-E: four options
//	F: correct option index (0-based)
//	G: explanation (optional)
func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	if len(os.Args) < 2 {
		log.Fatal("usage: import_questions <workbook.xlsx>")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"), os.Getenv("DB_PORT"))

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect database:", err)
	}

	f, err := excelize.OpenFile(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	sheets := f.GetSheetList()

	totalImported := 0

	for _, sheetName := range sheets {
		fmt.Printf("Importing sheet: %s\n", sheetName)
		rows, err := f.GetRows(sheetName)
		if err != nil {
			fmt.Printf("Error reading sheet %s: %v\n", sheetName, err)
			continue
		}

		for i, row := range rows {
			if i == 0 || len(row) < 6 { // Skip header or invalid rows
				continue
			}

			questionText := row[0]
			options := []string{row[1], row[2], row[3], row[4]}

			correctIndex, err := strconv.Atoi(row[5])
			if err != nil || correctIndex < 0 || correctIndex >= len(options) {
				fmt.Printf("Invalid correct index %q in row %d\n", row[5], i)
				continue
			}

			explanation := ""
			if len(row) > 6 {
				explanation = row[6]
			}

			optionsJSON, _ := json.Marshal(options)

			question := models.BankQuestion{
				Subject:      sheetName,
				QuestionText: questionText,
				Options:      string(optionsJSON),
				CorrectIndex: correctIndex,
				Explanation:  explanation,
			}

			if err := db.Create(&question).Error; err != nil {
				fmt.Printf("Error creating question in row %d: %v\n", i, err)
			} else {
				totalImported++
			}
		}
	}

	fmt.Printf("Successfully imported %d questions.\n", totalImported)
}
