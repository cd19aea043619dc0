package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	tracing "github.com/jamesrr39/go-tracing"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/gofs"
	"github.com/jamesrr39/goutil/httpextra"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/goutil/open"
	"github.com/jamesrr39/goutil/userextra"
	"github.com/jamesrr39/mappaint-app/classification"
	"github.com/jamesrr39/mappaint-app/mappaint"
	"github.com/jamesrr39/mappaint-app/mappaintdal"
	"github.com/jamesrr39/mappaint-app/mappaintdal/themedirdb"
	"github.com/jamesrr39/mappaint-app/mappaintdal/themepackdb"
	"github.com/jamesrr39/mappaint-app/mappaintdal/themesqldb/themepostgresql"
	"github.com/jamesrr39/mappaint-app/mappaintdal/valuesparquet"
	"github.com/jamesrr39/mappaint-app/styling"
	"github.com/jamesrr39/mappaint-app/styling/mapthemejson"
	"github.com/jamesrr39/mappaint-app/webservices"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/pkg/profile"
)

const (
	MAX_SERVER_RUNNING_ATTEMPTS        = 50
	DEFAULT_PORT                       = 9000
	DEFAULT_PACK_FILE_HANDLER_LIMIT    = 20
	DEFAULT_MAX_CONCURRENT_RESOLUTIONS = 16
	TRACING_FILE_ENV_NAME              = "MAPPAINT_TRACING_FILE"
)

var logger *logpkg.Logger

func main() {
	if len(os.Args) == 1 {
		logger = logpkg.NewLogger(os.Stderr, logpkg.LogLevelInfo)
		// start in desktop "double-click" visual mode
		err := setupDesktopMode()
		if err != nil {
			log.Fatalf("failed to start server: %q\n%s\n", err.Error(), err.Stack())
		}
		return
	}

	// start in command-line mode
	kingpin.Version(webservices.AppVersion)
	verbose := kingpin.Flag("v", "verbose logging").Bool()

	setupServe(verbose)
	setupValidate(verbose)
	setupLegend(verbose)
	setupClassify(verbose)
	setupPack(verbose)
	setupImport(verbose)

	kingpin.Parse()
}

func newLogger(verbose bool) *logpkg.Logger {
	logLevel := logpkg.LogLevelInfo
	if verbose {
		logLevel = logpkg.LogLevelDebug
	}

	return logpkg.NewLogger(os.Stderr, logLevel)
}

func ensureDefaultPathsConfig() (*mappaintdal.PathsConfig, errorsx.Error) {
	rootDir, err := userextra.ExpandUser("~/.local/share/github.com/jamesrr39/mappaint-app/")
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	pathsConfig := &mappaintdal.PathsConfig{
		ThemesDir:     filepath.Join(rootDir, "themes"),
		DataDir:       filepath.Join(rootDir, "data_files"),
		RawUploadsDir: filepath.Join(rootDir, "raw_uploads"),
		TempDir:       filepath.Join(rootDir, "tmp"),
	}

	err = pathsConfig.EnsurePaths()
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	return pathsConfig, nil
}

// seedThemesDir writes an editable copy of the built-in theme into an empty
// themes directory, so a first-time desktop user has a file to start from.
func seedThemesDir(fs gofs.Fs, themesDir string) errorsx.Error {
	dirEntries, err := fs.ReadDir(themesDir)
	if err != nil {
		return errorsx.Wrap(err)
	}

	if len(dirEntries) != 0 {
		return nil
	}

	document := mapthemejson.ToDocument(styling.NewBuiltinTheme())
	document.ID = "sample"
	document.Name = "Sample (editable copy of the built-in theme)"

	file, createErr := fs.Create(filepath.Join(themesDir, "sample"+mappaintdal.ThemeFileSuffixJSON))
	if createErr != nil {
		return errorsx.Wrap(createErr)
	}
	defer file.Close()

	return document.Encode(file)
}

func loadThemeConn(connString string, packFileHandlerLimit uint) (mappaintdal.ThemeSourceConn, errorsx.Error) {
	sourceURL, err := mappaintdal.ParseThemeSourcePath(connString)
	if err != nil {
		return nil, errorsx.Wrap(err, "theme source path", connString)
	}

	switch sourceURL.Type {
	case mappaintdal.ThemeSourceTypeThemeDir:
		return themedirdb.NewThemeDirDBConn(gofs.NewOsFs(), sourceURL.ConnectionPath)
	case mappaintdal.ThemeSourceTypeThemePack:
		openFileFunc := func() (gofs.File, errorsx.Error) {
			packFile, err := os.Open(sourceURL.ConnectionPath)
			if err != nil {
				return nil, errorsx.Wrap(err)
			}

			return packFile, nil
		}

		return themepackdb.NewThemePackDBConn(openFileFunc, filepath.Base(sourceURL.ConnectionPath), packFileHandlerLimit)
	case mappaintdal.ThemeSourceTypePostgresql:
		return themepostgresql.NewDBConn(sourceURL.ConnectionPath)
	default:
		return nil, errorsx.Errorf("unrecognized theme source type: %q", sourceURL.Type)
	}
}

func buildThemeSet(connSet *mappaintdal.ThemeConnSet, defaultThemeID string) (*styling.ThemeSet, errorsx.Error) {
	themes := []*styling.Theme{styling.NewBuiltinTheme()}

	if defaultThemeID != styling.BUILTIN_THEMEID {
		// pin the requested default in-process so it can't be shadowed or
		// removed by a source change while serving
		theme, err := connSet.GetThemeByID(context.Background(), defaultThemeID)
		if err != nil {
			return nil, errorsx.Wrap(err, "defaultThemeID", defaultThemeID)
		}

		themes = append(themes, theme)
	}

	return styling.NewThemeSet(themes, defaultThemeID)
}

var addrHelp = fmt.Sprintf(
	`address to serve on. Ex: ':%d' listen on port %d to traffic from anywhere. 'localhost:%d' listen on port %d to traffic from localhost`,
	DEFAULT_PORT, DEFAULT_PORT, DEFAULT_PORT, DEFAULT_PORT,
)

var themeSourceHelp = fmt.Sprintf(
	"theme source to serve from. It should be the type, followed by the separator (%s), followed by the path or URL. For example: %s%smy/themes/dir",
	mappaintdal.ConnectionPathSeparator,
	string(mappaintdal.ThemeSourceTypeThemeDir),
	mappaintdal.ConnectionPathSeparator,
)

func setupServe(verbose *bool) {
	cmd := kingpin.Command("serve", "serve the theme API")
	addr := cmd.Flag("addr", addrHelp).Default(fmt.Sprintf(":%d", DEFAULT_PORT)).String()
	themeSourceStrs := cmd.Flag("themes", themeSourceHelp).Strings()
	defaultThemeID := cmd.Flag("default-theme", "ID of the theme served when none is requested").Default(styling.BUILTIN_THEMEID).String()
	packFileHandlerLimit := cmd.Flag("pack-file-handler-limit", "maximum amount of file handlers per theme pack").Default(fmt.Sprintf("%d", DEFAULT_PACK_FILE_HANDLER_LIMIT)).Uint()
	shouldProfile := cmd.Flag("profile", "profile the request performance").Bool()
	allowAdminFromAnyHost := cmd.Flag("unsafe-allow-admin-from-any-host", "allow admin requests from hosts other than localhost").Bool()
	cmd.Action(func(ctx *kingpin.ParseContext) error {
		run := func() errorsx.Error {
			logger = newLogger(*verbose)

			var conns []mappaintdal.ThemeSourceConn
			for _, connString := range *themeSourceStrs {
				conn, err := loadThemeConn(connString, *packFileHandlerLimit)
				if err != nil {
					return errorsx.Wrap(err)
				}

				conns = append(conns, conn)
			}

			connSet := mappaintdal.NewThemeConnSet(conns)

			themeSet, err := buildThemeSet(connSet, *defaultThemeID)
			if err != nil {
				return errorsx.Wrap(err)
			}

			// uploads go to the first writable (directory) source, if any
			var installConn *themedirdb.ThemeDirDB
			for _, conn := range conns {
				dirConn, ok := conn.(*themedirdb.ThemeDirDB)
				if ok {
					installConn = dirConn
					break
				}
			}

			router, err := createServer(connSet, themeSet, nil, installConn, logger, *shouldProfile, *allowAdminFromAnyHost)
			if err != nil {
				return errorsx.Wrap(err)
			}

			server := httpextra.NewServerWithTimeouts()
			server.Addr = *addr
			server.Handler = router

			logger.Info("about to start serving on %q", *addr)

			listenErr := server.ListenAndServe()
			if listenErr != nil {
				return errorsx.Wrap(listenErr)
			}
			return nil
		}

		err := run()
		if err != nil {
			return fmt.Errorf("error: %q\nStack trace:\n%s", err.Error(), err.Stack())
		}
		return nil
	})
}

func setupDesktopMode() errorsx.Error {
	var err error
	pathsConfig, err := ensureDefaultPathsConfig()
	if err != nil {
		return errorsx.Wrap(err)
	}

	fs := gofs.NewOsFs()

	err = seedThemesDir(fs, pathsConfig.ThemesDir)
	if err != nil {
		return errorsx.Wrap(err)
	}

	themesDirConn, err := themedirdb.NewThemeDirDBConn(fs, pathsConfig.ThemesDir)
	if err != nil {
		return errorsx.Wrap(err)
	}

	connSet := mappaintdal.NewThemeConnSet([]mappaintdal.ThemeSourceConn{themesDirConn})

	themeSet, err := buildThemeSet(connSet, styling.BUILTIN_THEMEID)
	if err != nil {
		return errorsx.Wrap(err)
	}

	router, err := createServer(connSet, themeSet, pathsConfig, themesDirConn, logger, false, false)
	if err != nil {
		return errorsx.Wrap(err)
	}

	server := httpextra.NewServerWithTimeouts()
	server.Addr = fmt.Sprintf("localhost:%d", DEFAULT_PORT)
	server.Handler = router

	errChan := make(chan errorsx.Error)

	go func() {
		err := server.ListenAndServe()
		if err != nil {
			errChan <- errorsx.Wrap(err)
			return
		}
	}()

	go func() {
		// test server is running
		for i := 0; i < MAX_SERVER_RUNNING_ATTEMPTS; i++ {
			r, err := http.NewRequest(http.MethodGet, fmt.Sprintf("http://%s/api/info/", server.Addr), nil)
			if err != nil {
				errChan <- errorsx.Wrap(err)
				return
			}

			client := http.Client{
				Timeout: time.Second * 10,
			}
			resp, err := client.Do(r)
			if err != nil {
				// retry after wait
				time.Sleep(time.Millisecond * 500)
				continue
			}
			if resp.StatusCode != http.StatusOK {
				errChan <- errorsx.Errorf("expected response code %d from /api/info/ call, but got %d", http.StatusOK, resp.StatusCode)
				return
			}

			errChan <- nil
			return
		}

		errChan <- errorsx.Errorf("server did not start after %d attempts", MAX_SERVER_RUNNING_ATTEMPTS)
	}()

	err = <-errChan
	if err != nil {
		return errorsx.Wrap(err)
	}

	err = open.OpenURL(fmt.Sprintf("http://%s/admin/", server.Addr))
	if err != nil {
		return errorsx.Wrap(err)
	}

	// TODO better listening
	doneChan := make(chan struct{})
	<-doneChan

	return nil
}

func setupValidate(verbose *bool) {
	cmd := kingpin.Command("validate", "validate a theme file")
	filePath := cmd.Arg("file", "theme file (.json or .mps)").Required().String()
	cmd.Action(func(ctx *kingpin.ParseContext) error {
		logger = newLogger(*verbose)

		theme, err := parseThemeFile(*filePath)
		if err != nil {
			return fmt.Errorf("invalid: %q\n%s", err.Error(), err.Stack())
		}

		fmt.Printf("OK: theme %q (%d rules)\n", theme.ID, len(theme.Rules))
		return nil
	})
}

func setupLegend(verbose *bool) {
	cmd := kingpin.Command("legend", "print the legend of a theme file")
	filePath := cmd.Arg("file", "theme file (.json or .mps)").Required().String()
	cmd.Action(func(ctx *kingpin.ParseContext) error {
		logger = newLogger(*verbose)

		theme, err := parseThemeFile(*filePath)
		if err != nil {
			return fmt.Errorf("error: %q\n%s", err.Error(), err.Stack())
		}

		resolver, err := theme.NewResolver()
		if err != nil {
			return fmt.Errorf("error: %q\n%s", err.Error(), err.Stack())
		}

		fmt.Print(mappaint.LegendText(resolver.LegendEntries()))
		return nil
	})
}

const (
	classifyEngineParquet = "parquet"
	classifyEngineDuckDB  = "duckdb"
)

func setupClassify(verbose *bool) {
	cmd := kingpin.Command("classify", "classify a values dataset against a theme")
	themeFilePath := cmd.Arg("theme-file", "theme file (.json or .mps)").Required().String()
	datasetPath := cmd.Arg("dataset", "values dataset (parquet)").Required().String()
	outPath := cmd.Arg("out", "results file to write (parquet)").Required().String()
	whereClause := cmd.Flag("where", `filter the dataset before classifying. Example: value >= 10 && value < 50`).String()
	engine := cmd.Flag("engine", "dataset read engine").Default(classifyEngineParquet).Enum(classifyEngineParquet, classifyEngineDuckDB)
	maxConcurrency := cmd.Flag("max-concurrency", "maximum amount of concurrent rule resolutions").Default(fmt.Sprintf("%d", DEFAULT_MAX_CONCURRENT_RESOLUTIONS)).Uint()
	shouldProfile := cmd.Flag("profile", "profile the classification performance").Bool()
	cmd.Action(func(ctx *kingpin.ParseContext) error {
		run := func() errorsx.Error {
			logger = newLogger(*verbose)

			if *shouldProfile {
				defer profile.Start(profile.CPUProfile).Stop()
			}

			theme, err := parseThemeFile(*themeFilePath)
			if err != nil {
				return err
			}

			var filter valuesparquet.Filter
			if *whereClause != "" {
				filter, err = valuesparquet.ParseWhereClause(*whereClause)
				if err != nil {
					return err
				}
			}

			source, closeSource, err := openDatasetSource(*engine, *datasetPath, filter)
			if err != nil {
				return err
			}
			defer closeSource()

			writer, err := valuesparquet.NewResultWriter(*outPath)
			if err != nil {
				return err
			}

			startTime := time.Now()

			classifier := classification.NewClassifier(logger, *maxConcurrency)
			summary, err := classifier.ClassifyDataset(context.Background(), theme, source, writer, 0)
			if err != nil {
				return err
			}

			err = writer.Close()
			if err != nil {
				return err
			}

			logger.Info("classified %s in %s, results written to %q", summary, time.Since(startTime), *outPath)
			return nil
		}

		err := run()
		if err != nil {
			return fmt.Errorf("error: %q\nStack trace:\n%s", err.Error(), err.Stack())
		}
		return nil
	})
}

func setupPack(verbose *bool) {
	cmd := kingpin.Command("pack", "bundle a directory of theme files into one theme pack file")
	themesDir := cmd.Arg("themes-dir", "directory of theme files").Required().String()
	outPath := cmd.Arg("out", "pack file to write").Required().String()
	cmd.Action(func(ctx *kingpin.ParseContext) error {
		run := func() errorsx.Error {
			logger = newLogger(*verbose)

			outFile, createErr := os.Create(*outPath)
			if createErr != nil {
				return errorsx.Wrap(createErr)
			}
			defer outFile.Close()

			themeCount, err := themepackdb.BuildPackFromDir(gofs.NewOsFs(), *themesDir, outFile)
			if err != nil {
				return err
			}

			logger.Info("packed %d themes into %q", themeCount, *outPath)
			return nil
		}

		err := run()
		if err != nil {
			return fmt.Errorf("error: %q\nStack trace:\n%s", err.Error(), err.Stack())
		}
		return nil
	})
}

func setupImport(verbose *bool) {
	cmd := kingpin.Command("import", "validate a theme file and install it into a theme source")
	filePath := cmd.Arg("file", "theme file (.json or .mps)").Required().String()
	themesDirFlag := cmd.Flag("themes-dir", "themes directory to install into (default: the desktop-mode themes directory)").String()
	intoFlag := cmd.Flag("into", fmt.Sprintf("theme source to install into instead of a directory. Example: %s%suser:pass@localhost/mappaint", mappaintdal.ThemeSourceTypePostgresql, mappaintdal.ConnectionPathSeparator)).String()
	cmd.Action(func(ctx *kingpin.ParseContext) error {
		run := func() errorsx.Error {
			logger = newLogger(*verbose)

			if *intoFlag != "" {
				return importIntoSource(*intoFlag, *filePath)
			}

			pathsConfig, err := ensureDefaultPathsConfig()
			if err != nil {
				return err
			}

			themesDir := pathsConfig.ThemesDir
			if *themesDirFlag != "" {
				themesDir = *themesDirFlag
			}

			installConn, err := themedirdb.NewThemeDirDBConn(gofs.NewOsFs(), themesDir)
			if err != nil {
				return err
			}

			file, openErr := os.Open(*filePath)
			if openErr != nil {
				return errorsx.Wrap(openErr)
			}
			defer file.Close()

			fileName := filepath.Base(*filePath)

			processFunc := func(themeFilePath string, format mappaintdal.ThemeFormat) (*styling.Theme, errorsx.Error) {
				data, readErr := os.ReadFile(themeFilePath)
				if readErr != nil {
					return nil, errorsx.Wrap(readErr)
				}

				return installConn.InstallThemeFile(fileName, data)
			}

			importedChan := make(chan *styling.Theme)
			onImportedSuccessfully := func(theme *styling.Theme) {
				importedChan <- theme
			}

			queue := mappaintdal.NewImportQueue(pathsConfig)
			err = queue.AddItemToQueue(file, fileName, processFunc, onImportedSuccessfully)
			if err != nil {
				return err
			}

			for {
				select {
				case theme := <-importedChan:
					logger.Info("imported theme %q into %q", theme.ID, themesDir)
					return nil
				case <-time.After(time.Millisecond * 100):
					for _, item := range queue.GetItems() {
						if item.Status == mappaintdal.ImportStatusFailed {
							return errorsx.Errorf("import failed: %s", item.FailureMessage)
						}
					}
				}
			}
		}

		err := run()
		if err != nil {
			return fmt.Errorf("error: %q\nStack trace:\n%s", err.Error(), err.Stack())
		}
		return nil
	})
}

// importIntoSource loads one theme file into a non-directory source. Only
// SQL sources have an importer; packs are built with the pack command.
func importIntoSource(connString, filePath string) errorsx.Error {
	sourceURL, err := mappaintdal.ParseThemeSourcePath(connString)
	if err != nil {
		return errorsx.Wrap(err, "theme source path", connString)
	}

	if sourceURL.Type != mappaintdal.ThemeSourceTypePostgresql {
		return errorsx.Errorf("can't import into a %q source (postgresql only; use the pack command for theme packs)", sourceURL.Type)
	}

	importer, err := themepostgresql.NewImporter(sourceURL.ConnectionPath)
	if err != nil {
		return err
	}

	data, readErr := os.ReadFile(filePath)
	if readErr != nil {
		importer.Rollback()
		return errorsx.Wrap(readErr)
	}

	err = importer.ImportThemeFile(filepath.Base(filePath), data)
	if err != nil {
		importer.Rollback()
		return err
	}

	conn, summary, err := importer.Commit()
	if err != nil {
		return err
	}

	logger.Info("imported into %s: %s", conn.Name(), summary)
	return nil
}

func parseThemeFile(filePath string) (*styling.Theme, errorsx.Error) {
	format, err := mappaintdal.ThemeFormatForFileName(filePath)
	if err != nil {
		return nil, err
	}

	data, readErr := os.ReadFile(filePath)
	if readErr != nil {
		return nil, errorsx.Wrap(readErr)
	}

	theme, err := mappaintdal.ParseTheme(data, format)
	if err != nil {
		return nil, errorsx.Wrap(err, "filePath", filePath)
	}

	return theme, nil
}

// filteringDatasetSource applies a row filter to each batch a reader
// produces. TotalRows is the unfiltered count, used for progress logging
// only.
type filteringDatasetSource struct {
	reader *valuesparquet.DatasetReader
	filter valuesparquet.Filter
}

func (s *filteringDatasetSource) TotalRows() int64 {
	return s.reader.TotalRows()
}

func (s *filteringDatasetSource) ReadBatch(batchSize int) ([]*valuesparquet.DatasetRow, errorsx.Error) {
	batch, err := s.reader.ReadBatch(batchSize)
	if err != nil {
		return nil, err
	}

	if s.filter == nil {
		return batch, nil
	}

	return valuesparquet.FilterRows(batch, s.filter)
}

// sliceDatasetSource serves rows already fetched into memory, e.g. by the
// DuckDB engine.
type sliceDatasetSource struct {
	rows []*valuesparquet.DatasetRow
	pos  int
}

func (s *sliceDatasetSource) TotalRows() int64 {
	return int64(len(s.rows))
}

func (s *sliceDatasetSource) ReadBatch(batchSize int) ([]*valuesparquet.DatasetRow, errorsx.Error) {
	if s.pos >= len(s.rows) {
		return nil, nil
	}

	end := s.pos + batchSize
	if end > len(s.rows) {
		end = len(s.rows)
	}

	batch := s.rows[s.pos:end]
	s.pos = end
	return batch, nil
}

func openDatasetSource(engine, datasetPath string, filter valuesparquet.Filter) (classification.DatasetSource, func() errorsx.Error, errorsx.Error) {
	switch engine {
	case classifyEngineDuckDB:
		duckDBEngine, err := valuesparquet.NewDuckDBEngine()
		if err != nil {
			return nil, nil, err
		}

		rows, err := duckDBEngine.ReadDataset(context.Background(), datasetPath, filter)
		if err != nil {
			duckDBEngine.Close()
			return nil, nil, err
		}

		return &sliceDatasetSource{rows: rows}, duckDBEngine.Close, nil
	case classifyEngineParquet:
		reader, err := valuesparquet.NewDatasetReader(datasetPath)
		if err != nil {
			return nil, nil, err
		}

		return &filteringDatasetSource{reader, filter}, reader.Close, nil
	default:
		return nil, nil, errorsx.Errorf("unrecognized dataset engine: %q", engine)
	}
}

func isLocalhost(remoteAddr string) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}

	return host == "::1" || host == "127.0.0.1" || host == "localhost"
}

func createLocalhostMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			if !isLocalhost(r.RemoteAddr) {
				http.Error(w, "connections only allowed from the same computer the server is running on", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}

const (
	adminPath = "admin"
)

func createServer(
	connSet *mappaintdal.ThemeConnSet,
	themeSet *styling.ThemeSet,
	pathsConfig *mappaintdal.PathsConfig,
	installConn *themedirdb.ThemeDirDB,
	logger *logpkg.Logger,
	shouldProfile bool,
	allowAdminFromAnyHost bool,
) (chi.Router, errorsx.Error) {

	importQueue := mappaintdal.NewImportQueue(pathsConfig)

	adminService, err := webservices.NewAdminService(logger, pathsConfig, connSet, importQueue, installConn, adminPath)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	classifier := classification.NewClassifier(logger, DEFAULT_MAX_CONCURRENT_RESOLUTIONS)

	router := chi.NewRouter()
	router.Use(middleware.DefaultLogger)

	traceFilePath := os.Getenv(TRACING_FILE_ENV_NAME)
	if traceFilePath != "" {
		traceFile, createErr := os.Create(traceFilePath)
		if createErr != nil {
			return nil, errorsx.Wrap(createErr)
		}

		logger.Info("tracing at %q", traceFilePath)
		router.Use(tracing.Middleware(tracing.NewTracer(traceFile)))
	}

	router.Route("/api/", func(r chi.Router) {
		r.Mount("/info", webservices.NewInfoService(logger, connSet, themeSet))
		r.Mount("/themes", webservices.NewThemeService(logger, connSet, themeSet, classifier, shouldProfile))
	})
	router.Route(fmt.Sprintf("/%s/", adminPath), func(r chi.Router) {
		if !allowAdminFromAnyHost {
			r.Use(createLocalhostMiddleware())
		}
		r.Mount("/", adminService)
	})

	return router, nil
}
