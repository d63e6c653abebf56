package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// openK8sModal opens the Kubernetes namespace/pod filter modal, seeding it
// from the live API when a source is attached and falling back to scanning
// already-received log metadata otherwise.
func (m *DashboardModel) openK8sModal() {
	m.k8sModalOpen = true
	m.k8sActiveView = "namespaces"
	m.k8sFilterSelected = 0
	m.k8sScrollOffset = 0

	m.updateK8sNamespacesFromAPI()
	m.updateK8sPodsFromAPI()
}

func (m *DashboardModel) k8sListLength() int {
	if m.k8sActiveView == "pods" {
		return len(m.k8sPods) + 2
	}
	return len(m.k8sNamespaces) + 2
}

func (m *DashboardModel) k8sToggleSelected() {
	if m.k8sActiveView == "namespaces" {
		names := m.getSortedNamespaces()
		if m.k8sFilterSelected == 0 {
			allSelected := true
			for _, ns := range names {
				if !m.k8sNamespaces[ns] {
					allSelected = false
					break
				}
			}
			for _, ns := range names {
				m.k8sNamespaces[ns] = !allSelected
			}
			return
		}
		if idx := m.k8sFilterSelected - 2; idx >= 0 && idx < len(names) {
			m.k8sNamespaces[names[idx]] = !m.k8sNamespaces[names[idx]]
		}
		return
	}

	pods := m.getSortedPods()
	if m.k8sFilterSelected == 0 {
		allSelected := true
		for _, p := range pods {
			if !m.k8sPods[p] {
				allSelected = false
				break
			}
		}
		for _, p := range pods {
			m.k8sPods[p] = !allSelected
		}
		return
	}
	if idx := m.k8sFilterSelected - 2; idx >= 0 && idx < len(pods) {
		m.k8sPods[pods[idx]] = !m.k8sPods[pods[idx]]
	}
}

func (m *DashboardModel) applyK8sFilter() {
	if m.k8sSource == nil {
		return
	}

	var namespaces []string
	for ns, enabled := range m.k8sNamespaces {
		if enabled {
			namespaces = append(namespaces, ns)
		}
	}

	var podNames []string
	for pod, enabled := range m.k8sPods {
		if enabled {
			podNames = append(podNames, pod)
		}
	}

	if err := m.k8sSource.UpdateFilter(namespaces, "", podNames); err != nil {
		m.addInternal("error updating kubernetes filter: " + err.Error())
		return
	}
	m.addInternal("updated kubernetes filter")
}

func (m *DashboardModel) handleK8sModalKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.k8sModalOpen = false
		return m, nil
	case "enter":
		m.k8sModalOpen = false
		m.applyK8sFilter()
		return m, nil
	case "tab":
		if m.k8sActiveView == "namespaces" {
			m.k8sActiveView = "pods"
		} else {
			m.k8sActiveView = "namespaces"
		}
		m.k8sFilterSelected = 0
		m.k8sScrollOffset = 0
		return m, nil
	case "up":
		if m.k8sFilterSelected > 0 {
			m.k8sFilterSelected--
		}
		return m, nil
	case "down":
		if m.k8sFilterSelected < m.k8sListLength()-1 {
			m.k8sFilterSelected++
		}
		return m, nil
	case " ":
		m.k8sToggleSelected()
		return m, nil
	}

	return m, nil
}
