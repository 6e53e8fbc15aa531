package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rodaine/table"

	api "github.com/quizmd/quizmd/internal/api/http"
	"github.com/quizmd/quizmd/internal/auth"
	"github.com/quizmd/quizmd/internal/config"
	"github.com/quizmd/quizmd/internal/extract"
	"github.com/quizmd/quizmd/internal/migrate"
	"github.com/quizmd/quizmd/internal/qti"
	"github.com/quizmd/quizmd/internal/quiz"
	"github.com/quizmd/quizmd/internal/render"
	"github.com/quizmd/quizmd/internal/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(logger)
	case "export":
		err = runExport(os.Args[2:])
	case "migrate":
		err = runMigrate(os.Args[2:])
	case "stats":
		err = runStats(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: quizmd <command> [flags]

commands:
  serve     run the render/export HTTP service
  export    export quizzes from a docs tree as a QTI package
  migrate   rewrite legacy <?quiz?> blocks into checkbox syntax
  stats     show quiz counts for a docs tree`)
}

func runServe(logger *slog.Logger) error {
	cfg := config.FromEnv()

	defaults := render.DefaultOptions().Merge(cfg.RenderDefaults())
	proc := render.NewPageProcessor(defaults, logger)

	store, err := storage.NewFSStore(cfg.ExportBasePath)
	if err != nil {
		return fmt.Errorf("export store: %w", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:         300,
	}))

	mount := func(pr chi.Router) {
		pr.Post("/pages/render", api.RenderPageHandler(proc, cfg.EnabledByDefault))
		pr.Post("/export", api.ExportHandler(store))
		pr.Get("/exports/{name}", api.GetExportHandler(store))
	}

	if cfg.AuthSecret != "" {
		svc := auth.NewService(cfg.AuthSecret, cfg.AdminUser, cfg.AdminPassHash)
		r.Post("/auth/login", auth.LoginHandler(svc))
		r.Group(func(pr chi.Router) {
			pr.Use(auth.JWTMiddleware(svc))
			mount(pr)
		})
	} else {
		mount(r)
	}

	logger.Info("listening", "addr", cfg.HTTPAddr)
	return http.ListenAndServe(cfg.HTTPAddr, r)
}

func runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	dir := fs.String("dir", "docs", "directory to scan for markdown files")
	out := fs.String("out", "quiz-export.zip", "output archive path")
	version := fs.String("version", "1.2", "QTI version (1.2 or 2.1)")
	recursive := fs.Bool("recursive", true, "scan subdirectories")
	pattern := fs.String("pattern", "*.md", "file name pattern")
	fs.Parse(args)

	collection, err := extract.FromDirectory(*dir, *recursive, *pattern)
	if err != nil {
		return err
	}
	if collection.TotalQuestions() == 0 {
		return fmt.Errorf("no quizzes found under %s", *dir)
	}

	exporter, err := qti.New(*version, collection)
	if err != nil {
		return err
	}
	if err := qti.WritePackage(exporter, *out); err != nil {
		return err
	}

	fmt.Printf("Exported %s (QTI %s)\n\n", *out, exporter.Version())
	printCollectionTable(collection)
	return nil
}

func runStats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	dir := fs.String("dir", "docs", "directory to scan for markdown files")
	recursive := fs.Bool("recursive", true, "scan subdirectories")
	pattern := fs.String("pattern", "*.md", "file name pattern")
	fs.Parse(args)

	collection, err := extract.FromDirectory(*dir, *recursive, *pattern)
	if err != nil {
		return err
	}
	printCollectionTable(collection)
	return nil
}

func printCollectionTable(c quiz.Collection) {
	headerFmt := color.New(color.FgWhite, color.Bold, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()

	t := table.New("metric", "count")
	t.WithHeaderFormatter(headerFmt).WithFirstColumnFormatter(columnFmt)
	t.AddRow("questions", c.TotalQuestions())
	t.AddRow("single choice", c.SingleChoiceCount())
	t.AddRow("multiple choice", c.MultipleChoiceCount())
	t.Print()
}

func runMigrate(args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	dryRun := fs.Bool("dry-run", false, "show what would change without writing")
	fs.Parse(args)
	dir := "docs"
	if fs.NArg() > 0 {
		dir = fs.Arg(0)
	}

	sum, err := migrate.Directory(dir, *dryRun)
	if err != nil {
		return err
	}
	if sum.FilesModified == 0 {
		fmt.Println("No quiz blocks found to migrate")
		return nil
	}

	verb := "Converted"
	if *dryRun {
		verb = "Would convert"
	}
	for _, f := range sum.Files {
		fmt.Printf("  %s %d in %s\n", verb, f.Quizzes, f.Path)
	}
	fmt.Println()
	fmt.Println(color.GreenString("%s %d quizzes across %d files", verb, sum.QuizzesConverted, sum.FilesModified))
	if *dryRun {
		fmt.Println("Run without -dry-run to apply changes")
	}
	return nil
}
