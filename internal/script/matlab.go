// Package script generates a MATLAB plotting script that reproduces the fit of a run
// outside this program. The script is plain text; nothing here executes it.
package script

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/chrissnell/youngslab/internal/constants"
	"github.com/chrissnell/youngslab/internal/report"
	"github.com/chrissnell/youngslab/pkg/elasticity"
)

// Filename is the suggested name for a downloaded script
const Filename = "youngs_modulus_plot.m"

const matlabTemplate = `% --------------------------------------------------------
% Young's modulus: data reduction and plot
% Reported slope: Y = {{sci .Slope}} Pa
% --------------------------------------------------------

%% 1. Experiment parameters (SI units: m and kg)
g = {{.Gravity}};         % gravitational acceleration (m/s^2)
D = {{sci .D}};     % optical path length (m)
L = {{sci .L}};     % wire length (m)
b = {{sci .B}};     % optical lever arm (m)
d_avg = {{sci .DAvg}}; % mean wire diameter (m)

%% 2. Reduced data
% Stress Sigma (Pa)
Sigma = [{{join .Sigma}}];
% Strain Epsilon (dimensionless)
Epsilon = [{{join .Epsilon}}];

%% 3. Linear regression (least squares)
% Model: Sigma = Y * Epsilon + Intercept
P = polyfit(Epsilon, Sigma, 1);
Y_fit = P(1);     % Young's modulus (Pa)
Intercept = P(2); % intercept (Pa)

%% 4. Stress-strain plot
figure('Name', 'Stress-Strain Relationship Plot');
hold on;
scatter(Epsilon, Sigma, 80, 'b', 'o', 'filled', 'MarkerFaceAlpha', 0.7);
X_fit = linspace(min(Epsilon)*0.9, max(Epsilon)*1.1, 100);
Y_fit_line = Y_fit * X_fit + Intercept;
plot(X_fit, Y_fit_line, 'r--', 'LineWidth', 2);
title('Stress-strain (\sigma-\epsilon) relationship', 'FontSize', 14);
xlabel('Strain (\epsilon)', 'FontSize', 12);
ylabel('Stress (\sigma) (Pa)', 'FontSize', 12);
Y_fit_formatted = sprintf('%.3e', Y_fit);
legend('Experimental data', ['Linear fit (Y=', Y_fit_formatted, ' Pa)'], 'Location', 'northwest', 'FontSize', 10);
grid on;
box on;
hold off;

fprintf('Fitted Young''s modulus Y = %.3e Pa\n', Y_fit);
% --------------------------------------------------------
`

type scriptData struct {
	Gravity float64
	D       float64
	L       float64
	B       float64
	DAvg    float64
	Slope   float64
	Sigma   []float64
	Epsilon []float64
}

var tmpl = template.Must(template.New("matlab").Funcs(template.FuncMap{
	"sci": report.Script.Format,
	"join": func(vs []float64) string {
		parts := make([]string, len(vs))
		for i, v := range vs {
			parts[i] = report.Script.Format(v)
		}
		return strings.Join(parts, " ")
	},
}).Parse(matlabTemplate))

// MATLAB renders the plotting script for res
func MATLAB(res *elasticity.Result) (string, error) {
	data := scriptData{
		Gravity: constants.Gravity,
		D:       res.Derived.OpticalPath,
		L:       res.Derived.WireLength,
		B:       res.Derived.LeverArm,
		DAvg:    res.Derived.AvgDiameter,
		Slope:   res.Fit.Slope,
		Sigma:   res.Stresses(),
		Epsilon: res.Strains(),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
