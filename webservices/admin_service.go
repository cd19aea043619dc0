package webservices

import (
	"html/template"
	"net/http"
	"os"

	"github.com/go-chi/chi"
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/jamesrr39/mappaint-app/mappaintdal"
	"github.com/jamesrr39/mappaint-app/mappaintdal/themedirdb"
	"github.com/jamesrr39/mappaint-app/styling"
)

type AdminService struct {
	logger            *logpkg.Logger
	pathsConfig       *mappaintdal.PathsConfig
	connSet           *mappaintdal.ThemeConnSet
	importQueue       *mappaintdal.ImportQueue
	installConn       *themedirdb.ThemeDirDB
	routerURLBasePath string
	chi.Router
}

func NewAdminService(
	logger *logpkg.Logger,
	pathsConfig *mappaintdal.PathsConfig,
	connSet *mappaintdal.ThemeConnSet,
	importQueue *mappaintdal.ImportQueue,
	installConn *themedirdb.ThemeDirDB,
	routerURLBasePath string,
) (*AdminService, errorsx.Error) {

	as := &AdminService{logger, pathsConfig, connSet, importQueue, installConn, routerURLBasePath, chi.NewRouter()}

	as.Router.Get("/", as.handleGet)
	as.Router.Post("/themes", as.handlePostThemeFile)

	return as, nil
}

func (as *AdminService) handlePostThemeFile(w http.ResponseWriter, r *http.Request) {
	// the import queue spools uploads into the raw uploads dir, so both a
	// writable source and a paths config are needed
	if as.installConn == nil || as.pathsConfig == nil {
		errorsx.HTTPError(w, as.logger, errorsx.Errorf("no writable themes directory configured, so uploads are disabled"), http.StatusBadRequest)
		return
	}

	multipartFile, formData, err := r.FormFile("themeFile")
	if err != nil {
		errorsx.HTTPError(w, as.logger, errorsx.Wrap(err), http.StatusBadRequest)
		return
	}
	defer multipartFile.Close()

	processFunc := func(themeFilePath string, format mappaintdal.ThemeFormat) (*styling.Theme, errorsx.Error) {
		data, err := os.ReadFile(themeFilePath)
		if err != nil {
			return nil, errorsx.Wrap(err)
		}

		return as.installConn.InstallThemeFile(formData.Filename, data)
	}

	onImportedSuccessfully := func(theme *styling.Theme) {
		as.logger.Info("imported theme %q from uploaded file %q", theme.ID, formData.Filename)
	}

	errx := as.importQueue.AddItemToQueue(multipartFile, formData.Filename, processFunc, onImportedSuccessfully)
	if errx != nil {
		errorsx.HTTPError(w, as.logger, errx, http.StatusBadRequest)
		return
	}
}

func (as *AdminService) handleGet(w http.ResponseWriter, r *http.Request) {
	var sourceNames []string
	for _, conn := range as.connSet.GetConns() {
		sourceNames = append(sourceNames, conn.Name())
	}

	data := map[string]interface{}{
		"SourceNames":       sourceNames,
		"RouterURLBasePath": as.routerURLBasePath,
	}

	if as.pathsConfig != nil {
		data["ThemesDirPath"] = as.pathsConfig.ThemesDir
		data["RawUploadsPath"] = as.pathsConfig.RawUploadsDir
		data["ImportQueueStatus"] = as.importQueue.GetItems()
	}
	err := adminTmpl.Execute(w, data)
	if err != nil {
		errorsx.HTTPError(w, as.logger, errorsx.Wrap(err), http.StatusInternalServerError)
		return
	}
}

var adminTmpl *template.Template

func init() {
	var err error
	adminTmpl, err = template.New("admin/index.html").Parse(adminTemplate)
	if err != nil {
		panic(err)
	}
}

const adminTemplate = `
<html>
	<head>
		<title>mappaint admin</title>
		<style type="text/css">
		div {
			margin: 10px;
			border: 1px solid grey;
			padding: 10px;
		}

		</style>
		<script>

		function submitThemeFile(formEl) {
			const formData = new FormData(formEl);

			fetch('/{{.RouterURLBasePath}}/themes', {method: 'POST', body: formData})
				.then(() => alert('successfully uploaded theme file. File is queued for processing.'))
				.catch(e => {
					console.error(e);
					alert('failed to upload theme file: ' + e);
				});

			return false;
		}

		</script>
	</head>
	<body>
		<div>
			<h3>Upload a theme file</h3>
			<form onsubmit="return submitThemeFile(this);">
				<input type="file" name="themeFile" />
				<input type="submit" value="Upload" />
			</form>
			<p>Supported: .json theme documents and .mps paint scripts.</p>
		</div>
		<div>
			<h3>Import queue</h3>
			<table>
				<tr><th>File</th><th>Status</th><th>Theme ID</th><th>Failure</th><th>Time</th></tr>
				{{range .ImportQueueStatus}}
				<tr>
					<td>{{.FileName}}</td>
					<td>{{.Status}}</td>
					<td>{{.ThemeID}}</td>
					<td>{{.FailureMessage}}</td>
					<td>{{.TimeInProgress}}</td>
				</tr>
				{{end}}
			</table>
		</div>
		<div>
			<h3>Connected theme sources</h3>
			<ul>
				{{range .SourceNames}}<li>{{.}}</li>{{end}}
			</ul>
			<p>Themes directory: {{.ThemesDirPath}}</p>
		</div>
	</body>
</html>
`
